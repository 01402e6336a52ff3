package telemetry

// DefaultCapacity is the number of samples the dashboard keeps.
const DefaultCapacity = 100

// Sample is one telemetry reading.
type Sample struct {
	Time     int     `json:"time"`
	Speed    float64 `json:"speed"`
	Altitude float64 `json:"altitude"`
	Thrust   float64 `json:"thrust"`
}

// Buffer is a fixed-capacity ring of samples, oldest first.
// It is not safe for concurrent use; the dashboard engine is its only writer.
type Buffer struct {
	data  []Sample
	head  int // index of the oldest sample
	count int
}

// NewBuffer creates a buffer holding at most capacity samples.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]Sample, capacity)}
}

// Push appends s, evicting the oldest sample when the buffer is full.
func (b *Buffer) Push(s Sample) {
	if b.count < len(b.data) {
		b.data[(b.head+b.count)%len(b.data)] = s
		b.count++
		return
	}
	b.data[b.head] = s
	b.head = (b.head + 1) % len(b.data)
}

func (b *Buffer) Len() int { return b.count }

func (b *Buffer) Cap() int { return len(b.data) }

// At returns the i-th sample counted from the oldest. It panics on out of range
// the way slice indexing does.
func (b *Buffer) At(i int) Sample {
	if i < 0 || i >= b.count {
		panic("telemetry: index out of range")
	}
	return b.data[(b.head+i)%len(b.data)]
}

// Last returns the newest sample.
func (b *Buffer) Last() (Sample, bool) {
	if b.count == 0 {
		return Sample{}, false
	}
	return b.At(b.count - 1), true
}

// Samples returns a copy of the contents, oldest first.
func (b *Buffer) Samples() []Sample {
	out := make([]Sample, b.count)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

func (b *Buffer) Times() []int {
	out := make([]int, b.count)
	for i := range out {
		out[i] = b.At(i).Time
	}
	return out
}

func (b *Buffer) Speeds() []float64 {
	return b.column(func(s Sample) float64 { return s.Speed })
}

func (b *Buffer) Altitudes() []float64 {
	return b.column(func(s Sample) float64 { return s.Altitude })
}

func (b *Buffer) Thrusts() []float64 {
	return b.column(func(s Sample) float64 { return s.Thrust })
}

func (b *Buffer) column(f func(Sample) float64) []float64 {
	out := make([]float64, b.count)
	for i := range out {
		out[i] = f(b.At(i))
	}
	return out
}

// Truncate keeps only the newest n samples. It is a no-op when Len() <= n.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if b.count <= n {
		return
	}
	drop := b.count - n
	b.head = (b.head + drop) % len(b.data)
	b.count = n
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.head = 0
	b.count = 0
}
