package diag

import "time"

// Diagnostic is a non-fatal failure recorded during the dead-man's
// sequence or the wipe engine. The sequencer's one guarantee is that it
// advances past every stage regardless of how many Diagnostics pile up.
type Diagnostic struct {
	Stage Stage
	Err   error
	At    time.Time
}

// Sink collects Diagnostics without ever blocking or returning an error
// of its own — a sink that could itself fail would give the sequencer an
// excuse to stop, which §4.3 forbids after stage 1.
type Sink interface {
	Record(d Diagnostic)
}

// MemorySink is the default Sink: an in-process slice, adequate for a
// single pre-boot session that exits or powers off shortly after.
type MemorySink struct {
	entries []Diagnostic
}

// NewMemorySink returns an empty MemorySink ready for use.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Record(d Diagnostic) {
	s.entries = append(s.entries, d)
}

// Entries returns the recorded diagnostics in the order they occurred.
func (s *MemorySink) Entries() []Diagnostic {
	out := make([]Diagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}

// NullSink discards every Diagnostic. Useful for call sites (tests,
// VERIFY_ONLY dry runs) that don't care to inspect the trail.
type NullSink struct{}

func (NullSink) Record(Diagnostic) {}
