package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(b *Buffer, from, to int) {
	for i := from; i < to; i++ {
		b.Push(Sample{Time: i, Speed: float64(i)})
	}
}

func TestBuffer_PushEvictsOldest(t *testing.T) {
	b := NewBuffer(5)
	fill(b, 0, 3)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{0, 1, 2}, b.Times())

	fill(b, 3, 12)
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 5, b.Cap())
	assert.Equal(t, []int{7, 8, 9, 10, 11}, b.Times())
	assert.Equal(t, []float64{7, 8, 9, 10, 11}, b.Speeds())

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, 11, last.Time)
	assert.Equal(t, 7, b.At(0).Time)
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewBuffer(0).Cap())
	assert.Equal(t, DefaultCapacity, NewBuffer(-3).Cap())
}

func TestBuffer_Truncate(t *testing.T) {
	tests := []struct {
		name  string
		fill  int
		keep  int
		times []int
	}{
		{"NoOp_Shorter", 3, 100, []int{0, 1, 2}},
		{"NoOp_Equal", 4, 4, []int{0, 1, 2, 3}},
		{"Keeps_Newest", 6, 2, []int{4, 5}},
		{"Zero", 3, 0, []int{}},
		{"Negative", 3, -1, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(10)
			fill(b, 0, tt.fill)
			b.Truncate(tt.keep)
			assert.Equal(t, tt.times, b.Times())
		})
	}
}

func TestBuffer_TruncateAfterWrap(t *testing.T) {
	b := NewBuffer(4)
	fill(b, 0, 7)
	b.Truncate(2)
	assert.Equal(t, []int{5, 6}, b.Times())
	b.Push(Sample{Time: 7})
	assert.Equal(t, []int{5, 6, 7}, b.Times())
}

func TestBuffer_ResetAndEmpty(t *testing.T) {
	b := NewBuffer(3)
	_, ok := b.Last()
	assert.False(t, ok)
	assert.Empty(t, b.Samples())

	fill(b, 0, 5)
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Panics(t, func() { b.At(0) })
}

func TestBuffer_SamplesIsCopy(t *testing.T) {
	b := NewBuffer(3)
	fill(b, 0, 3)
	s := b.Samples()
	s[0].Time = 99
	assert.Equal(t, 0, b.At(0).Time)
}
