package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRow(t *testing.T) {
	var buf bytes.Buffer

	f := New([]string{"File", "Polarity"}, &buf)

	require.NoError(t, f.WriteRow("serum1.mzML", "positive"))
	require.NoError(t, f.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "File")
	assert.Contains(t, lines[1], "serum1.mzML")
	assert.Contains(t, lines[1], "positive")
}
