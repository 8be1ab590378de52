package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
)

// Level selects which of an annotation's renderings is printed.
type Level int

const (
	LevelLong Level = iota
	LevelMedium
	LevelShort
)

var levelNames = [...]string{"long", "medium", "short"}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps a level name onto a Level.
func ParseLevel(s string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(s, n) {
			return Level(i), nil
		}
	}
	return LevelLong, errors.Errorf("unknown output level %q", s)
}

// pick returns the rendering for the level, falling back to the shortest available.
func pick(strs []string, l Level) string {
	if len(strs) == 0 {
		return ""
	}
	if int(l) >= len(strs) {
		return strs[len(strs)-1]
	}
	return strs[l]
}

// AnnotationPrinter prints one line per annotation.
type AnnotationPrinter struct {
	ItemPrinter
	level        Level
	rows         map[ft8xx.Row]bool // nil prints every row
	collectStats bool
	counts       map[ft8xx.Category]int
}

// NewAnnotationPrinter creates a new annotation printer.
func NewAnnotationPrinter(writer io.Writer) *AnnotationPrinter {
	return &AnnotationPrinter{
		ItemPrinter: *NewItemPrinter(writer),
		counts:      make(map[ft8xx.Category]int),
	}
}

// SetLevel selects the rendering to print.
func (p *AnnotationPrinter) SetLevel(l Level) { p.level = l }

// SetRows restricts output to annotations in the given rows. No rows prints everything.
func (p *AnnotationPrinter) SetRows(rows ...ft8xx.Row) {
	if len(rows) == 0 {
		p.rows = nil
		return
	}
	p.rows = make(map[ft8xx.Row]bool, len(rows))
	for _, r := range rows {
		p.rows[r] = true
	}
}

// AnnotationIn implements ft8xx.AnnotationIn.
func (p *AnnotationPrinter) AnnotationIn(a *ft8xx.Annotation) eve.DatapathResp {
	if p.collectStats {
		p.counts[a.Category]++
	}
	if p.IsMuted() || (p.rows != nil && !p.rows[a.Category.Row()]) {
		return eve.RespCont
	}

	var sb strings.Builder
	if !p.IdxPrintMuted() {
		sb.WriteString(fmt.Sprintf("Idx:%d-%d; ", a.Span.Start, a.Span.End))
	}
	sb.WriteString(a.Category.String())
	sb.WriteString("; ")
	sb.WriteString(pick(a.Strings, p.level))

	p.ItemPrintLine(p.clip(sb.String()) + "\n")
	return eve.RespCont
}

// SetCollectStats turns on statistics collection.
func (p *AnnotationPrinter) SetCollectStats() { p.collectStats = true }

// Count returns the number of annotations seen in a category.
func (p *AnnotationPrinter) Count(c ft8xx.Category) int { return p.counts[c] }

// PrintStats outputs the per category annotation counts.
func (p *AnnotationPrinter) PrintStats() {
	var sb strings.Builder

	sb.WriteString("Annotations processed:-\n")
	for c := ft8xx.CatTransaction; c <= ft8xx.CatParameter; c++ {
		sb.WriteString(fmt.Sprintf("%-18s : %d\n", c, p.counts[c]))
	}
	sb.WriteString("\n")

	p.ItemPrintLine(sb.String())
}
