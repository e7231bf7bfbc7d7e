package binding

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
	"github.com/techalysis/techalysis/pkg/indicator"
)

type computeFunc func(in Input, p Params) (columns []floats.Slice, state interface{}, err error)

type nextFunc func(state json.RawMessage, sample Sample) (values []float64, next interface{}, err error)

type lookbackFunc func(p Params) (int, error)

// Indicator is one registered indicator.
type Indicator struct {
	Name        string
	Description string

	// Columns names the output series, in order.
	Columns []string

	// Inputs names the Input series the indicator reads.
	Inputs []string

	Defaults Params

	lookback lookbackFunc
	compute  computeFunc
	next     nextFunc
}

func (ind *Indicator) Lookback(p Params) (int, error) {
	return ind.lookback(p.Merge(ind.Defaults))
}

// Output is the result of Compute or Next. Next produces one value per column.
type Output struct {
	Name    string                  `json:"name"`
	Columns map[string]floats.Slice `json:"columns"`
	Order   []string                `json:"order"`
	State   json.RawMessage         `json:"state"`
}

// Column returns the series named col, nil when absent.
func (o *Output) Column(col string) floats.Slice {
	return o.Columns[col]
}

var registry = make(map[string]*Indicator)

// reserved indicators are known by name but have no implementation.
var reserved = map[string]struct{}{
	"mama":         {},
	"sar":          {},
	"ht_trendline": {},
}

func register(ind *Indicator) {
	if _, exists := registry[ind.Name]; exists {
		panic(fmt.Errorf("indicator %s is already registered", ind.Name))
	}
	registry[ind.Name] = ind
}

// Names returns the registered indicator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReservedNames returns the names that are recognized but not implemented yet.
func ReservedNames() []string {
	names := make([]string, 0, len(reserved))
	for name := range reserved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (*Indicator, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if ind, ok := registry[key]; ok {
		return ind, nil
	}
	if _, ok := reserved[key]; ok {
		return nil, indicator.NotImplemented(key)
	}
	return nil, &indicator.Error{Kind: indicator.BadParam, Message: fmt.Sprintf("unknown indicator %q", name)}
}

// Compute runs the named indicator over the whole input. Zero fields of p take
// the indicator defaults, see Params.
func Compute(name string, in Input, p Params) (*Output, error) {
	ind, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	columns, state, err := ind.compute(in, p.Merge(ind.Defaults))
	if err != nil {
		return nil, err
	}

	return newOutput(ind, columns, state)
}

// Next advances a state snapshot produced by Compute or Next by one sample.
func Next(name string, state json.RawMessage, sample Sample) (*Output, error) {
	ind, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	values, next, err := ind.next(state, sample)
	if err != nil {
		return nil, err
	}

	columns := make([]floats.Slice, len(values))
	for i, v := range values {
		columns[i] = floats.New(v)
	}
	return newOutput(ind, columns, next)
}

func newOutput(ind *Indicator, columns []floats.Slice, state interface{}) (*Output, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Name:    ind.Name,
		Columns: make(map[string]floats.Slice, len(columns)),
		Order:   ind.Columns,
		State:   raw,
	}
	for i, col := range ind.Columns {
		out.Columns[col] = columns[i]
	}
	return out, nil
}
