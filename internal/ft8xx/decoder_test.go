package ft8xx

import (
	"bytes"
	"strings"
	"testing"

	"evedecode/internal/common"
	"evedecode/internal/eve"
)

type sink struct {
	anns []Annotation
	resp eve.DatapathResp
	fail bool
}

func (s *sink) AnnotationIn(a *Annotation) eve.DatapathResp {
	if s.fail {
		panic("sink failure")
	}
	s.anns = append(s.anns, *a)
	return s.resp
}

type errLog struct{ msgs []string }

func (l *errLog) LogError(_ eve.ErrSeverity, msg string)   { l.msgs = append(l.msgs, msg) }
func (l *errLog) LogMessage(_ eve.ErrSeverity, msg string) { l.msgs = append(l.msgs, msg) }

func newTestDecoder(t *testing.T, log common.Logger) (*Decoder, *sink, *errLog) {
	t.Helper()
	d := NewDecoder(nil, log)
	out := &sink{}
	if err := d.AnnotationOut().Attach(out); err != eve.OK {
		t.Fatalf("Attach: %v", err)
	}
	el := &errLog{}
	d.ErrorLogAttachPt().Attach(el)
	return d, out, el
}

func TestDecoderTransfers(t *testing.T) {
	var buf bytes.Buffer
	d, out, _ := newTestDecoder(t, common.NewLogrusLogger(&buf, common.SeverityDebug))

	if resp := d.Decode(transfer([]byte{0x00, 0x00, 0x00}, nil)); resp != eve.RespCont {
		t.Fatalf("resp %v", resp)
	}
	if resp := d.Decode(transfer(cat(writeHdr(0x300000), []byte{1}), nil)); resp != eve.RespCont {
		t.Fatalf("resp %v", resp)
	}
	// ignored: wrong type, empty
	d.Decode(Event{Type: EventCSChange})
	d.Decode(Event{Type: EventTransfer})

	st := d.Stats()
	if st.Transfers != 2 || st.Ignored != 2 || st.Warnings != 1 {
		t.Errorf("stats %+v", st)
	}
	if st.Transactions[TxHostCommand] != 1 || st.Transactions[TxMemoryWrite] != 1 {
		t.Errorf("transactions %v", st.Transactions)
	}
	if int(st.Annotations) != len(out.anns) || len(out.anns) != 8 {
		t.Errorf("annotations: counted %d, received %d", st.Annotations, len(out.anns))
	}

	log := buf.String()
	if !strings.Contains(log, "truncated command") || !strings.Contains(log, "kind=TruncatedCommand") {
		t.Errorf("warning not logged:\n%s", log)
	}
	if !strings.Contains(log, "Host Command transaction") || !strings.Contains(log, "level=debug") {
		t.Errorf("transaction not logged:\n%s", log)
	}

	d.ResetStats()
	if d.Stats().Transfers != 0 {
		t.Error("ResetStats")
	}
}

func TestDecoderSinkStops(t *testing.T) {
	d, out, _ := newTestDecoder(t, nil)
	out.resp = eve.RespFatalInvalidData
	if resp := d.Decode(transfer([]byte{0x00, 0x00, 0x00}, nil)); resp != eve.RespFatalInvalidData {
		t.Errorf("resp %v", resp)
	}
	if len(out.anns) != 1 {
		t.Errorf("sink received %d annotations after refusing the first", len(out.anns))
	}
}

func TestDecoderErrors(t *testing.T) {
	d := NewDecoder(nil, nil)
	if resp := d.Decode(transfer([]byte{0x41, 0, 0}, nil)); resp != eve.RespFatalNotInit {
		t.Errorf("no sink: %v", resp)
	}

	d, _, el := newTestDecoder(t, nil)
	ev := transfer([]byte{0x41, 0, 0}, nil)
	ev.MISO = ev.MISO[:2]
	if resp := d.Decode(ev); resp != eve.RespFatalInvalidParam {
		t.Errorf("length mismatch: %v", resp)
	}
	if len(el.msgs) != 1 || !strings.Contains(el.msgs[0], "3 MOSI and 2 MISO") {
		t.Errorf("error log %v", el.msgs)
	}

	d, out, el := newTestDecoder(t, nil)
	out.fail = true
	if resp := d.Decode(transfer([]byte{0x41, 0, 0}, nil)); resp != eve.RespFatalSysErr {
		t.Errorf("panicking sink: %v", resp)
	}
	if len(el.msgs) != 1 || !strings.Contains(el.msgs[0], "sink failure") {
		t.Errorf("error log %v", el.msgs)
	}
}

func TestConfig(t *testing.T) {
	cfg := NewConfig()
	if cfg.Family != eve.FamilyAny || cfg.Touch != eve.TouchAny {
		t.Errorf("defaults %v", cfg)
	}
	if err := cfg.SetFamily("BT815"); err != nil || cfg.Family != eve.FamilyBT81x {
		t.Errorf("SetFamily: %v %v", err, cfg.Family)
	}
	err := cfg.SetFamily("ft900")
	if err == nil || err.Code != eve.ErrUnknownFamily {
		t.Errorf("SetFamily(ft900): %v", err)
	}
	if cfg.Family != eve.FamilyBT81x {
		t.Error("failed SetFamily changed the family")
	}
	if err := cfg.SetTouchMode("sideways"); err == nil || err.Code != eve.ErrInvalidParamVal {
		t.Errorf("SetTouchMode: %v", err)
	}
	if cfg.String() != "family=BT81x touch=any" {
		t.Errorf("String %q", cfg.String())
	}
	if NewDecoder(cfg, nil).Config().Family != eve.FamilyBT81x {
		t.Error("decoder config")
	}
}
