package printers

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
)

// TreePrinter groups the annotations of each transfer into a tree: the
// transaction at the root, decoded items below it and each warning under
// the command it follows.
type TreePrinter struct {
	ItemPrinter
	level     Level
	pending   []ft8xx.Annotation
	transfers int
}

// NewTreePrinter creates a new tree printer.
func NewTreePrinter(writer io.Writer) *TreePrinter {
	return &TreePrinter{ItemPrinter: *NewItemPrinter(writer)}
}

// SetLevel selects the rendering to print.
func (p *TreePrinter) SetLevel(l Level) { p.level = l }

// AnnotationIn implements ft8xx.AnnotationIn. Annotations are held until EndTransfer.
func (p *TreePrinter) AnnotationIn(a *ft8xx.Annotation) eve.DatapathResp {
	if !p.IsMuted() {
		p.pending = append(p.pending, *a)
	}
	return eve.RespCont
}

// EndTransfer prints the tree for the annotations received since the last call.
func (p *TreePrinter) EndTransfer() {
	if len(p.pending) == 0 {
		return
	}
	p.transfers++
	p.ItemPrintLine(p.build().String())
	p.pending = p.pending[:0]
}

// Transfers returns the number of trees printed.
func (p *TreePrinter) Transfers() int { return p.transfers }

func (p *TreePrinter) label(a *ft8xx.Annotation) string {
	s := pick(a.Strings, p.level)
	if !p.IdxPrintMuted() {
		s = fmt.Sprintf("[%d-%d] %s", a.Span.Start, a.Span.End, s)
	}
	return p.clip(s)
}

func (p *TreePrinter) build() treeprint.Tree {
	tree := treeprint.New()
	root := fmt.Sprintf("Transfer %d", p.transfers)
	for i := range p.pending {
		if a := &p.pending[i]; a.Category == ft8xx.CatTransaction {
			root = p.label(a)
		}
	}
	tree.SetValue(root)

	var cmd treeprint.Tree
	for i := range p.pending {
		a := &p.pending[i]
		switch {
		case a.Category == ft8xx.CatTransaction:
		case a.Category == ft8xx.CatWarning && cmd != nil:
			cmd.AddNode(p.label(a))
		case a.Category.Row() == ft8xx.RowCommand:
			cmd = tree.AddBranch(p.label(a))
		default:
			cmd = nil
			tree.AddNode(p.label(a))
		}
	}
	return tree
}
