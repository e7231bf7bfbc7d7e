package style

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsYellowWhiteOnBlack,
	}
	style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
	style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	return &style
}

// SeriesTable renders aligned indicator columns, one row per index.
type SeriesTable struct {
	Title     string
	Precision int

	// Offset is the index of the first row, used when a tail is printed.
	Offset int

	order   []string
	columns []floats.Slice
	colored []bool
}

func NewSeriesTable(title string, precision int) *SeriesTable {
	return &SeriesTable{Title: title, Precision: precision}
}

func (t *SeriesTable) AddColumn(name string, values floats.Slice) {
	t.order = append(t.order, name)
	t.columns = append(t.columns, values)
	t.colored = append(t.colored, false)
}

// AddSignedColumn adds a column whose values are colored by sign.
func (t *SeriesTable) AddSignedColumn(name string, values floats.Slice) {
	t.AddColumn(name, values)
	t.colored[len(t.colored)-1] = true
}

func (t *SeriesTable) rows() int {
	n := 0
	for _, col := range t.columns {
		if len(col) > n {
			n = len(col)
		}
	}
	return n
}

// Render writes the table to w. style may be nil for a plain table.
func (t *SeriesTable) Render(w io.Writer, style *table.Style) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if style != nil {
		tw.SetStyle(*style)
	}
	if t.Title != "" {
		tw.SetTitle(t.Title)
	}

	header := table.Row{"#"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}
	for i, name := range t.order {
		header = append(header, name)
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for i := 0; i < t.rows(); i++ {
		row := table.Row{strconv.Itoa(t.Offset + i)}
		for j, col := range t.columns {
			switch {
			case i < len(col) && t.colored[j]:
				row = append(row, ColorValue(col[i], t.Precision))
			case i < len(col):
				row = append(row, FormatValue(col[i], t.Precision))
			default:
				row = append(row, "")
			}
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
