// Package output provides table serialization for the reporting layer.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ceilinglight/devaplot/internal/depth"
)

// ReportWriter writes a variant report view as CSV with a fixed
// pos,A,T,C,G column order.
type ReportWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewReportWriter creates a new report writer.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{
		w:       bufio.NewWriter(w),
		columns: []string{"pos", "A", "T", "C", "G"},
	}
}

// WriteHeader writes the column header line.
func (rw *ReportWriter) WriteHeader() error {
	_, err := rw.w.WriteString(strings.Join(rw.columns, ",") + "\n")
	return err
}

// Write writes a single report row.
func (rw *ReportWriter) Write(r depth.Report) error {
	fields := []string{
		strconv.FormatInt(r.Pos, 10),
		formatValue(r.A),
		formatValue(r.T),
		formatValue(r.C),
		formatValue(r.G),
	}
	_, err := rw.w.WriteString(strings.Join(fields, ",") + "\n")
	return err
}

// WriteAll writes the header and all rows, then flushes.
func (rw *ReportWriter) WriteAll(rows []depth.Report) error {
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := rw.Write(r); err != nil {
			return err
		}
	}
	return rw.Flush()
}

// Flush flushes buffered output.
func (rw *ReportWriter) Flush() error {
	return rw.w.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
