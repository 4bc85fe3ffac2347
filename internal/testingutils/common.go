package testingutils

import (
	"errors"
	"sync"
	"time"
)

var ErrChannelUnavailable = errors.New("channel unavailable")

// FakeClock is a millisecond clock that only advances when slept on.
type FakeClock struct {
	mu     sync.Mutex
	Now    uint32
	Sleeps []time.Duration
}

func NewFakeClock(start uint32) *FakeClock {
	return &FakeClock{Now: start}
}

func (c *FakeClock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Now
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sleeps = append(c.Sleeps, d)
	c.Now += uint32(d.Milliseconds())
}

// FailingChannel is a PWM channel that rejects every write.
type FailingChannel struct{}

func (FailingChannel) Write(duty uint32) error {
	return ErrChannelUnavailable
}

func (FailingChannel) Close() error {
	return nil
}
