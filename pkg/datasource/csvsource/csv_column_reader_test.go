package csvsource

import (
	"encoding/csv"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func TestCSVColumnReader_Read(t *testing.T) {
	tests := []struct {
		name string
		give string
		want []float64
		err  error
	}{
		{
			name: "Read floats",
			give: "close,high,low\n10.5,11,9.75",
			want: []float64{10.5, 11, 9.75},
		},
		{
			name: "Not enough columns",
			give: "close,high,low\n10.5,11",
			err:  ErrNotEnoughColumns,
		},
		{
			name: "Invalid value",
			give: "close,high\n10.5,abc",
			err:  ErrInvalidValueFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := csv.NewReader(strings.NewReader(tt.give))
			reader.FieldsPerRecord = -1
			r := NewCSVColumnReader(reader)
			values, err := r.Read()
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, values)

			_, err = r.Read()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestReadColumns(t *testing.T) {
	give := `# fixture
Close, High, Low, Expected
1,2,0.5,
2,3,1.5,nan
3,4,2.5,2
`
	cols, err := ReadColumns(strings.NewReader(give))
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "high", "low", "expected"}, cols.Names)
	assert.Equal(t, 3, cols.Len())
	assert.True(t, cols.Has("CLOSE"))

	closes, err := cols.Column("close")
	require.NoError(t, err)
	assert.Equal(t, floats.Slice{1, 2, 3}, closes)

	expected, err := cols.Column("expected")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(expected[0]))
	assert.True(t, math.IsNaN(expected[1]))
	assert.Equal(t, 2.0, expected[2])

	_, err = cols.Column("volume")
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestReadColumnsFile(t *testing.T) {
	cols, err := ReadColumnsFile("testdata/prices.csv")
	require.NoError(t, err)
	assert.True(t, cols.Has("close"))
	assert.True(t, cols.Has("high"))
	assert.True(t, cols.Has("low"))
	assert.Greater(t, cols.Len(), 100)

	_, err = ReadColumnsFile("testdata/missing.csv")
	assert.Error(t, err)
}
