package diag

import "collabscan/internal/source"

// Reporter is the minimal contract the pipeline stages use to emit
// diagnostics. Implementations: BagReporter (collects into a Bag),
// NopReporter (discards).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter writes every report into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}
	for _, n := range notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	r.Bag.Add(d)
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
