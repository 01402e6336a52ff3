package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable(
		Column{Name: "Speed", Values: []float64{200.004, 210, 220}},
		Column{Name: "Altitude", Values: []float64{30000}},
		Column{Name: "Thrust", Values: nil},
	)

	assert.Equal(t, []string{"Speed", "Altitude", "Thrust"}, tbl.Columns)
	assert.Len(t, tbl.Rows, len(Statistics))
	assert.Equal(t, "count", tbl.Rows[0].Key)
	assert.Equal(t, "Number of observations", tbl.Rows[0].Description)

	v, ok := tbl.Lookup("min", "Speed")
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)

	v, _ = tbl.Lookup("count", "Thrust")
	assert.Equal(t, 0.0, v)

	v, _ = tbl.Lookup("std", "Altitude")
	assert.True(t, math.IsNaN(v))

	_, ok = tbl.Lookup("min", "Pressure")
	assert.False(t, ok)

	std := tbl.Rows[2]
	assert.Equal(t, "std", std.Key)
	assert.Equal(t, Placeholder, std.Text[1])
	assert.Equal(t, Placeholder, std.Text[2])
	assert.Equal(t, "10.00", std.Text[0])
}

func TestTable_JSONNull(t *testing.T) {
	tbl := NewTable(Column{Name: "Speed"})
	data, err := json.Marshal(tbl)
	require.NoError(t, err)

	var decoded struct {
		Rows []struct {
			Values []*float64 `json:"values"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Rows, len(Statistics))
	require.NotNil(t, decoded.Rows[0].Values[0])
	assert.Equal(t, 0.0, *decoded.Rows[0].Values[0])
	assert.Nil(t, decoded.Rows[1].Values[0])
}

func TestNumber(t *testing.T) {
	data, err := json.Marshal(Numbers([]float64{1.5, math.NaN(), math.Inf(1)}))
	require.NoError(t, err)
	assert.Equal(t, "[1.5,null,null]", string(data))
	assert.Equal(t, "1.50", Number(1.5).String())
}
