// Package dump implements the named dump-sink collaborator spec §6.3
// describes: a write-only, append-only destination for the raw text the
// QE driver (C5) produces at each pipeline phase. Two variants exist — a
// no-op sink for production runs and a directory-backed one for the
// `--dump` CLI flag — both satisfying the same Handler contract.
package dump

import "errors"

// ErrDuplicateSink is returned when a named sub-sink is requested twice
// from the same Handler.
var ErrDuplicateSink = errors.New("dump: location already exists")

// Sink accepts one (filename, text) write per call. Implementations must
// make each write atomic: a reader never observes a partial file.
type Sink interface {
	Write(filename, text string) error
}

// Handler creates named sub-sinks. The eight names the QE driver uses are
// spec §5's "trace", "trace_formula", "qe_input", "qe_output", "rip_input",
// "rip_output", "qf_cnf_formula", "qf_dnf_formula", but Handler itself is
// agnostic to the name set.
type Handler interface {
	// Sink returns the sub-sink for name, creating it on first use.
	// DirectoryHandler fails a second call with the same name with
	// ErrDuplicateSink; NoOpHandler keeps no names and accepts repeats.
	Sink(name string) (Sink, error)
}
