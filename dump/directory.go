package dump

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryHandler creates one subdirectory per named sink under Root.
// Satisfies the `--dump <dir>` CLI flag.
type DirectoryHandler struct {
	Root  string
	known map[string]bool
}

// NewDirectoryHandler builds a Handler rooted at root. root is created on
// first Sink call, not eagerly.
func NewDirectoryHandler(root string) *DirectoryHandler {
	return &DirectoryHandler{Root: root, known: map[string]bool{}}
}

// Sink implements Handler. A second call with the same name fails with
// ErrDuplicateSink, matching spec §7's "location X already exists".
func (h *DirectoryHandler) Sink(name string) (Sink, error) {
	if h.known == nil {
		h.known = map[string]bool{}
	}
	if h.known[name] {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSink, name)
	}

	dir := filepath.Join(h.Root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dump: creating sink %q: %w", name, err)
	}
	h.known[name] = true
	return directorySink{dir: dir}, nil
}

// directorySink writes each (filename, text) pair to its own file under
// dir, via a temp-file-then-rename so a reader never sees a partial file.
type directorySink struct {
	dir string
}

func (s directorySink) Write(filename, text string) error {
	target := filepath.Join(s.dir, filename)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("dump: writing %q: %w", target, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("dump: finalizing %q: %w", target, err)
	}
	return nil
}
