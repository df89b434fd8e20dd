package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gleanerhq/gleaner/pkg/extract"
	"github.com/gleanerhq/gleaner/pkg/schema"
)

// CSVWriter writes valid records as delimited rows, one column per schema
// field in declared order. Invalid records and undeclared keys are omitted;
// the full report formats exist for those.
type CSVWriter struct {
	w           *csv.Writer
	fields      []string
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer with the given column order.
func NewCSVWriter(w io.Writer, fields []string) *CSVWriter {
	return &CSVWriter{
		w:      csv.NewWriter(w),
		fields: fields,
	}
}

// Write outputs the valid records of a report, or a single record.
func (w *CSVWriter) Write(data any) error {
	if err := w.header(); err != nil {
		return err
	}

	switch v := data.(type) {
	case extract.Report:
		for _, rec := range v.ValidRecords() {
			if err := w.writeRecord(rec); err != nil {
				return err
			}
		}
		return nil
	case extract.Record:
		return w.writeRecord(v)
	default:
		return fmt.Errorf("csv output supports reports and records, got %T", data)
	}
}

func (w *CSVWriter) header() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.w.Write(w.fields)
}

func (w *CSVWriter) writeRecord(rec extract.Record) error {
	row := make([]string, len(w.fields))
	for i, name := range w.fields {
		row[i] = cell(rec[name])
	}
	return w.w.Write(row)
}

// cell renders one coerced value for tabular output.
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(schema.DateLayout)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Flush writes any buffered rows.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
