package tsv

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type Writer struct {
	file io.WriteCloser

	*csv.Writer
}

func NewWriterFile(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return NewWriter(f), nil
}

func AppendWriterFile(filename string) (*Writer, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	return NewWriter(f), nil
}

func NewWriter(file io.WriteCloser) *Writer {
	tsv := csv.NewWriter(file)
	tsv.Comma = '\t'
	return &Writer{
		Writer: tsv,
		file:   file,
	}
}

// WriteSeries writes a header row "index" + names followed by one row per
// index. Columns shorter than the longest one leave empty cells.
func (w *Writer) WriteSeries(offset int, names []string, columns []floats.Slice) error {
	header := append([]string{"index"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	rows := 0
	for _, col := range columns {
		if len(col) > rows {
			rows = len(col)
		}
	}

	record := make([]string, len(columns)+1)
	for i := 0; i < rows; i++ {
		record[0] = strconv.Itoa(offset + i)
		for j, col := range columns {
			record[j+1] = ""
			if i < len(col) {
				record[j+1] = strconv.FormatFloat(col[i], 'g', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (w *Writer) Close() error {
	w.Writer.Flush()
	return w.file.Close()
}

// nopCloser lets a Writer wrap os.Stdout without closing it.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriterNopClose wraps w, Close flushes but leaves w open.
func NewWriterNopClose(w io.Writer) *Writer {
	return NewWriter(nopCloser{w})
}
