package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ceilinglight/devaplot/internal/depth"
)

// TableWriter writes the full depth table as tab-delimited text for the
// chart layer. Gap rows emit "NA" in the total column.
type TableWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTableWriter creates a new depth table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{
		w:       bufio.NewWriter(w),
		columns: []string{"pos", "A", "T", "C", "G", "noVar", "depth"},
	}
}

// WriteHeader writes the column header line.
func (tw *TableWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single depth row.
func (tw *TableWriter) Write(r depth.Row) error {
	total := "NA"
	if !r.IsGap() {
		total = formatValue(r.Total)
	}
	fields := []string{
		strconv.FormatInt(r.Pos, 10),
		formatValue(r.A),
		formatValue(r.T),
		formatValue(r.C),
		formatValue(r.G),
		formatValue(r.NoVariant),
		total,
	}
	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// WriteAll writes the header and all rows, then flushes.
func (tw *TableWriter) WriteAll(rows []depth.Row) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes buffered output.
func (tw *TableWriter) Flush() error {
	return tw.w.Flush()
}
