package stats

import (
	"math"
	"strconv"
)

// Placeholder stands in for a statistic that is undefined for the window.
const Placeholder = "—"

// Number is a float64 that encodes NaN and Inf as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// String formats n with two decimals, or Placeholder.
func (n Number) String() string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Numbers converts xs element-wise.
func Numbers(xs []float64) []Number {
	out := make([]Number, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

// Statistic names one table row.
type Statistic struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// Statistics lists the table rows in display order.
var Statistics = []Statistic{
	{"count", "Number of observations"},
	{"mean", "Mean"},
	{"std", "Standard deviation"},
	{"min", "Minimum value"},
	{"25%", "1st quartile (25% of the data are below this value)"},
	{"50%", "Median (50% of the data are below this value)"},
	{"75%", "3rd quartile (75% of the data are below this value)"},
	{"max", "Maximum value"},
}

// Column is one named series of the table.
type Column struct {
	Name   string
	Values []float64
}

// Row holds one statistic for every column. Text mirrors Values formatted for display.
type Row struct {
	Statistic
	Values []Number `json:"values"`
	Text   []string `json:"text"`
}

// Table is the descriptive statistics table.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable describes each column and lays the rounded results out by statistic.
func NewTable(cols ...Column) Table {
	t := Table{Columns: make([]string, len(cols))}
	sums := make([]Summary, len(cols))
	for i, c := range cols {
		t.Columns[i] = c.Name
		sums[i] = Describe(c.Values).Rounded()
	}

	t.Rows = make([]Row, len(Statistics))
	for r, st := range Statistics {
		row := Row{Statistic: st, Values: make([]Number, len(cols)), Text: make([]string, len(cols))}
		for i, s := range sums {
			v := Number(s.field(st.Key))
			row.Values[i] = v
			row.Text[i] = v.String()
		}
		t.Rows[r] = row
	}
	return t
}

// Lookup returns the rounded value of statistic key for column name.
func (t Table) Lookup(key, name string) (float64, bool) {
	col := -1
	for i, c := range t.Columns {
		if c == name {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Key == key {
			return float64(r.Values[col]), true
		}
	}
	return 0, false
}

func (s Summary) field(key string) float64 {
	switch key {
	case "count":
		return float64(s.Count)
	case "mean":
		return s.Mean
	case "std":
		return s.Std
	case "min":
		return s.Min
	case "25%":
		return s.Q25
	case "50%":
		return s.Q50
	case "75%":
		return s.Q75
	case "max":
		return s.Max
	}
	return math.NaN()
}
