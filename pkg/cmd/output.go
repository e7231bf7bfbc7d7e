package cmd

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/data/tsv"
	"github.com/techalysis/techalysis/pkg/datatype/floats"
	"github.com/techalysis/techalysis/pkg/style"
)

const (
	FormatTable = "table"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

func outputFlags(flags *pflag.FlagSet) {
	flags.String("format", FormatTable, "output format: table, tsv or json")
	flags.Int("precision", 4, "decimal places in table output")
	flags.String("output", "", "write to this file instead of stdout")
}

// signedColumns oscillate around zero and are colored by sign in tables.
var signedColumns = map[string]bool{
	"histogram": true,
	"macd":      true,
	"roc":       true,
}

// view is the part of an output that gets printed.
type view struct {
	Title   string
	Offset  int
	Names   []string
	Columns []floats.Slice
	State   json.RawMessage
}

// newView selects columns of out, optionally prefixed with the close input,
// and keeps the last tail rows when tail > 0.
func newView(out *binding.Output, columns []string, closes floats.Slice, tail int) *view {
	v := &view{Title: out.Name, State: out.State}
	if closes != nil {
		v.Names = append(v.Names, "close")
		v.Columns = append(v.Columns, closes)
	}

	if len(columns) == 0 {
		columns = out.Order
	}
	for _, col := range columns {
		v.Names = append(v.Names, col)
		v.Columns = append(v.Columns, out.Column(col))
	}

	if tail > 0 {
		n := 0
		for _, c := range v.Columns {
			if len(c) > n {
				n = len(c)
			}
		}
		if tail < n {
			v.Offset = n - tail
			for i, c := range v.Columns {
				v.Columns[i] = c.Tail(tail)
			}
		}
	}
	return v
}

type jsonView struct {
	Name    string                `json:"name"`
	Offset  int                   `json:"offset"`
	Order   []string              `json:"order"`
	Columns map[string][]*float64 `json:"columns"`
	State   json.RawMessage       `json:"state,omitempty"`
}

// nullable maps NaN to null, json has no NaN.
func nullable(values floats.Slice) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}

func (v *view) write(w io.Writer, format string, precision int) error {
	switch format {
	case FormatTable:
		tbl := style.NewSeriesTable(v.Title, precision)
		tbl.Offset = v.Offset
		for i, name := range v.Names {
			if signedColumns[name] {
				tbl.AddSignedColumn(name, v.Columns[i])
			} else {
				tbl.AddColumn(name, v.Columns[i])
			}
		}
		tbl.Render(w, style.NewDefaultTableStyle())
		return nil

	case FormatTSV:
		tw := tsv.NewWriterNopClose(w)
		if err := tw.WriteSeries(v.Offset, v.Names, v.Columns); err != nil {
			return err
		}
		return tw.Close()

	case FormatJSON:
		out := jsonView{
			Name:    v.Title,
			Offset:  v.Offset,
			Order:   v.Names,
			Columns: make(map[string][]*float64, len(v.Names)),
			State:   v.State,
		}
		for i, name := range v.Names {
			out.Columns[name] = nullable(v.Columns[i])
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	return errors.Errorf("unknown output format %q", format)
}

// openOutput returns stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeState(path string, state json.RawMessage) error {
	return os.WriteFile(path, append(state, '\n'), 0644)
}
