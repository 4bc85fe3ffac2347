package pwm

import (
	"errors"
	"sync"
)

var ErrChannelClosed = errors.New("pwm: channel closed")

// MemoryChannel keeps every written duty value in memory.
type MemoryChannel struct {
	mu     sync.Mutex
	writes []uint32
	closed bool
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{}
}

func (c *MemoryChannel) Write(duty uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}
	c.writes = append(c.writes, duty)
	return nil
}

func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Writes returns a copy of all duty values written so far
func (c *MemoryChannel) Writes() []uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]uint32, len(c.writes))
	copy(result, c.writes)
	return result
}

// Last returns the most recently written duty value
func (c *MemoryChannel) Last() (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return 0, false
	}
	return c.writes[len(c.writes)-1], true
}

func (c *MemoryChannel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
