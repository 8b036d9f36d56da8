package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryHandler_WritesFile(t *testing.T) {
	root := t.TempDir()
	h := NewDirectoryHandler(root)

	sink, err := h.Sink("trace")
	require.NoError(t, err)
	require.NoError(t, sink.Write("0.json", `{"depth":0}`))

	data, err := os.ReadFile(filepath.Join(root, "trace", "0.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"depth":0}`, string(data))
}

func TestDirectoryHandler_DuplicateSinkNameFails(t *testing.T) {
	h := NewDirectoryHandler(t.TempDir())
	_, err := h.Sink("qe_input")
	require.NoError(t, err)

	_, err = h.Sink("qe_input")
	require.ErrorIs(t, err, ErrDuplicateSink)
}

func TestNoOpHandler_NeverErrors(t *testing.T) {
	h := NoOpHandler{}
	sink, err := h.Sink("rip_input")
	require.NoError(t, err)
	assert.NoError(t, sink.Write("anything", "text"))

	sink2, err := h.Sink("rip_input")
	require.NoError(t, err)
	assert.NoError(t, sink2.Write("anything", "text"))
}
