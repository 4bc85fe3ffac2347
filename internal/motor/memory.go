package motor

import (
	"errors"
	"sync"
)

var ErrOutputClosed = errors.New("motor output closed")

// MemoryOutput keeps every line pattern in memory.
type MemoryOutput struct {
	mu     sync.Mutex
	writes [][]int
	closed bool
}

func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{}
}

func (o *MemoryOutput) SetValues(values []int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrOutputClosed
	}
	v := make([]int, len(values))
	copy(v, values)
	o.writes = append(o.writes, v)
	return nil
}

func (o *MemoryOutput) Writes() [][]int {
	o.mu.Lock()
	defer o.mu.Unlock()
	result := make([][]int, len(o.writes))
	copy(result, o.writes)
	return result
}

func (o *MemoryOutput) Last() []int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.writes) == 0 {
		return nil
	}
	return o.writes[len(o.writes)-1]
}

func (o *MemoryOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}
