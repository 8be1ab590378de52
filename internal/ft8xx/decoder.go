package ft8xx

import (
	"fmt"

	"evedecode/internal/common"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
)

// EventType is the kind of event delivered by the SPI layer.
type EventType int

const (
	EventTransfer EventType = iota // a complete chip-select framed transfer
	EventCSChange
	EventBits
)

func (t EventType) String() string {
	switch t {
	case EventTransfer:
		return "TRANSFER"
	case EventCSChange:
		return "CS-CHANGE"
	case EventBits:
		return "BITS"
	}
	return "unknown"
}

// Event is one SPI layer event. MOSI and MISO hold the same number of bytes.
type Event struct {
	Type EventType
	MOSI []Byte
	MISO []Byte
}

// Span returns the samples covered by the event's bytes.
func (e Event) Span() eve.Span {
	if len(e.MOSI) == 0 {
		return eve.Span{Start: eve.BadSampleIdx, End: eve.BadSampleIdx}
	}
	return eve.Span{Start: e.MOSI[0].Span.Start, End: e.MOSI[len(e.MOSI)-1].Span.End}
}

// AnnotationIn receives decoded annotations.
type AnnotationIn interface {
	AnnotationIn(a *Annotation) eve.DatapathResp
}

// Stats counts decoder activity.
type Stats struct {
	Transfers    uint64
	Ignored      uint64
	Annotations  uint64
	Warnings     uint64
	Transactions [3]uint64 // by TxKind
}

// Decoder decodes transfer events, one Session per transfer.
type Decoder struct {
	common.TraceComponent
	cfg   Config
	log   common.Logger
	out   common.AttachPt[AnnotationIn]
	stats Stats
}

// NewDecoder creates a decoder. A nil logger discards log output.
func NewDecoder(cfg *Config, log common.Logger) *Decoder {
	d := &Decoder{cfg: *NewConfig(), log: log}
	if cfg != nil {
		d.cfg = *cfg
	}
	if d.log == nil {
		d.log = common.NewNoOpLogger()
	}
	d.InitTraceComponent("FT8XX_DCD")
	d.out.SetEnabled(true)
	return d
}

// Config returns the active configuration.
func (d *Decoder) Config() Config { return d.cfg }

// AnnotationOut is the attach point for the annotation sink.
func (d *Decoder) AnnotationOut() *common.AttachPt[AnnotationIn] { return &d.out }

// Stats returns the counters accumulated so far.
func (d *Decoder) Stats() Stats { return d.stats }

// ResetStats clears the counters.
func (d *Decoder) ResetStats() { d.stats = Stats{} }

// Decode runs one event through a fresh session. Only transfers with MOSI
// data are decoded.
func (d *Decoder) Decode(ev Event) (resp eve.DatapathResp) {
	if ev.Type != EventTransfer || len(ev.MOSI) == 0 {
		d.stats.Ignored++
		return eve.RespCont
	}
	if len(ev.MISO) != len(ev.MOSI) {
		err := common.NewErrorWithIdxMsg(eve.ErrSevError, eve.ErrInvalidParamVal, ev.MOSI[0].Span.Start,
			fmt.Sprintf("transfer has %d MOSI and %d MISO bytes", len(ev.MOSI), len(ev.MISO)))
		d.LogError(err)
		d.log.Error(err)
		return eve.RespFatalInvalidParam
	}
	if !d.out.HasAttachedAndEnabled() {
		d.LogError(common.NewErrorMsg(eve.ErrSevError, eve.ErrNotInit, "no annotation sink attached"))
		return eve.RespFatalNotInit
	}

	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(*common.Error); ok {
				d.LogError(err)
				d.log.Error(err)
			} else {
				err := common.NewErrorWithIdxMsg(eve.ErrSevError, eve.ErrDataDecodeFatal, ev.MOSI[0].Span.Start,
					fmt.Sprintf("Unknown System Error decoding transfer: %v", r))
				d.LogError(err)
				d.log.Error(err)
			}
			resp = eve.RespFatalSysErr
		}
	}()

	d.stats.Transfers++
	s := NewSession(&d.cfg)
	resp = eve.RespCont
	for i := range ev.MOSI {
		resp = d.send(s.Feed(Pair{MOSI: ev.MOSI[i], MISO: ev.MISO[i]}))
		if eve.DataRespIsFatal(resp) {
			return resp
		}
	}
	return d.send(s.Finish())
}

func (d *Decoder) send(anns []Annotation) eve.DatapathResp {
	resp := eve.RespCont
	for i := range anns {
		a := &anns[i]
		d.stats.Annotations++
		d.logAnnotation(a)
		resp = d.out.First().AnnotationIn(a)
		if eve.DataRespIsFatal(resp) {
			break
		}
	}
	return resp
}

func (d *Decoder) logAnnotation(a *Annotation) {
	switch p := a.Payload.(type) {
	case diag.Warning:
		d.stats.Warnings++
		d.log.WithFields(map[string]interface{}{
			"kind":  p.Kind.String(),
			"start": a.Span.Start,
			"end":   a.Span.End,
		}).Warning(a.Strings[0])
	case Transaction:
		d.stats.Transactions[p.Kind]++
		d.log.WithFields(map[string]interface{}{
			"mosi":  p.MOSI,
			"miso":  p.MISO,
			"start": a.Span.Start,
		}).Debug(a.Strings[0])
	}
}
