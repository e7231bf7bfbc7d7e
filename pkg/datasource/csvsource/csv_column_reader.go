package csvsource

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// Columns holds named float series read from a CSV file with a header row.
type Columns struct {
	Names  []string
	series map[string]floats.Slice
}

func (c *Columns) Has(name string) bool {
	_, ok := c.series[strings.ToLower(name)]
	return ok
}

// Column returns the series of the given column, names are case-insensitive.
func (c *Columns) Column(name string) (floats.Slice, error) {
	s, ok := c.series[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, "column %q", name)
	}
	return s, nil
}

// Len returns the number of rows.
func (c *Columns) Len() int {
	if len(c.Names) == 0 {
		return 0
	}
	return len(c.series[c.Names[0]])
}

// CSVColumnReader reads a header row followed by float records.
type CSVColumnReader struct {
	csv     *csv.Reader
	decoder CSVValueDecoder
	header  []string
}

// NewCSVColumnReader creates a new CSVColumnReader with the default float decoder.
func NewCSVColumnReader(csv *csv.Reader) *CSVColumnReader {
	return &CSVColumnReader{
		csv:     csv,
		decoder: FloatValueDecoder,
	}
}

// NewCSVColumnReaderWithDecoder creates a new CSVColumnReader with the given decoder.
func NewCSVColumnReaderWithDecoder(csv *csv.Reader, decoder CSVValueDecoder) *CSVColumnReader {
	return &CSVColumnReader{
		csv:     csv,
		decoder: decoder,
	}
}

// Header reads the header row on first use.
func (r *CSVColumnReader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}

	rec, err := r.csv.Read()
	if err != nil {
		return nil, err
	}

	header := make([]string, len(rec))
	for i, name := range rec {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}
	r.header = header
	return header, nil
}

// Read reads the next record as one value per header column.
func (r *CSVColumnReader) Read() ([]float64, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	rec, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	if len(rec) < len(header) {
		return nil, errors.Wrapf(ErrNotEnoughColumns, "got %d fields, header has %d", len(rec), len(header))
	}

	values := make([]float64, len(header))
	for i := range header {
		v, err := r.decoder(rec[i])
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", header[i])
		}
		values[i] = v
	}
	return values, nil
}

// ReadAll reads every remaining record.
func (r *CSVColumnReader) ReadAll() (*Columns, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	cols := &Columns{
		Names:  header,
		series: make(map[string]floats.Slice, len(header)),
	}
	for _, name := range header {
		cols.series[name] = floats.Slice{}
	}

	for {
		values, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		for i, name := range header {
			cols.series[name] = append(cols.series[name], values[i])
		}
	}

	return cols, nil
}

// ReadColumns reads all columns from r.
func ReadColumns(r io.Reader) (*Columns, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	return NewCSVColumnReader(reader).ReadAll()
}

// ReadColumnsFile reads all columns from the CSV file at path.
func ReadColumnsFile(path string) (*Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := ReadColumns(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}
	return cols, nil
}
