package scratch

// A Buffer is size-tagged count storage retained across computations.
type Buffer struct {
	// Capacity is the sample count the buffer was allocated for.
	Capacity int32
	Counts   []int32
}

// Fits reports whether the buffer can hold exactly n counts.
func (b *Buffer) Fits(n int32) bool {
	return b != nil && b.Capacity == n && int32(len(b.Counts)) == n
}

// NewBuffer allocates a Buffer of capacity n from a.
func NewBuffer(a Allocator, n int32) (*Buffer, error) {
	counts, err := a.Alloc(n)
	if err != nil {
		return nil, err
	}

	return &Buffer{Capacity: n, Counts: counts}, nil
}
