package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRow(t *testing.T) {
	var buf bytes.Buffer

	f := New([]string{"File", "Scans"}, &buf)

	require.NoError(t, f.WriteRow("serum1.mzML", 3))
	require.NoError(t, f.Flush())

	assert.Equal(t, "File,Scans\nserum1.mzML,3\n", buf.String())
}

func TestWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer

	f := New(nil, &buf)

	require.NoError(t, f.WriteRow("a", "b"))
	require.NoError(t, f.Flush())

	assert.Equal(t, "a,b\n", buf.String())
}
