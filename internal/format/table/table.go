// Package table provides a Formatter writing an ASCII table with space
// separated columns.
package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter converts rows into an ASCII table format.
type Formatter struct {
	out       io.Writer
	tabWriter *tabwriter.Writer
}

// New returns a new table formatter that writes to out.
// If headers is not empty, it is written as the first row.
func New(headers []string, out io.Writer) *Formatter {
	f := Formatter{
		out:       out,
		tabWriter: tabwriter.NewWriter(out, 0, 0, 8, ' ', 0),
	}

	if len(headers) > 0 {
		fmt.Fprintln(f.tabWriter, strings.Join(headers, "\t"))
	}

	return &f
}

// WriteRow writes a row to the tabwriter buffer.
func (f *Formatter) WriteRow(row ...any) error {
	var rowStr strings.Builder

	for i, col := range row {
		fmt.Fprint(&rowStr, col)

		if i+1 < len(row) {
			rowStr.WriteByte('\t')
		}
	}

	_, err := fmt.Fprintln(f.tabWriter, rowStr.String())
	return err
}

// Flush flushes the tabwriter buffer, should be called after all rows were
// written, otherwise the column width might be incorrect. See tabwriter.Flush()
// documentation.
func (f *Formatter) Flush() error {
	return f.tabWriter.Flush()
}
