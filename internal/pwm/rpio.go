package pwm

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpio derives the PWM clock by dividing a 19.2 MHz oscillator
const (
	rpioMinClockHz = 4688
	rpioMaxClockHz = 9_600_000
)

// pins with a hardware PWM function on the 40 pin header
var rpioPwmPins = map[int]bool{
	12: true,
	13: true,
	18: true,
	19: true,
}

var (
	rpioMutex    sync.Mutex
	rpioRefCount int
)

// RpioChannel drives the SoC PWM of a Raspberry Pi through /dev/gpiomem.
type RpioChannel struct {
	pin      rpio.Pin
	cycleLen uint32
}

func OpenRpioChannel(pin int, frequency int, resolution int) (*RpioChannel, error) {
	if !rpioPwmPins[pin] {
		return nil, fmt.Errorf("pwm: gpio %d has no hardware pwm function, use one of 12 | 13 | 18 | 19", pin)
	}

	cycleLen := uint32(1) << uint(resolution)
	clock := frequency * int(cycleLen)
	if clock < rpioMinClockHz || clock > rpioMaxClockHz {
		return nil, fmt.Errorf("pwm: %d Hz at %d bit needs a %d Hz pwm clock, supported is [%d..%d]", frequency, resolution, clock, rpioMinClockHz, rpioMaxClockHz)
	}

	if err := acquireRpio(); err != nil {
		return nil, err
	}

	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(clock)
	p.DutyCycle(0, cycleLen)

	return &RpioChannel{pin: p, cycleLen: cycleLen}, nil
}

func (c *RpioChannel) Write(duty uint32) error {
	if duty > c.cycleLen {
		duty = c.cycleLen
	}
	c.pin.DutyCycle(duty, c.cycleLen)
	return nil
}

func (c *RpioChannel) Close() error {
	c.pin.DutyCycle(0, c.cycleLen)
	c.pin.Output()
	c.pin.Low()
	return releaseRpio()
}

func acquireRpio() error {
	rpioMutex.Lock()
	defer rpioMutex.Unlock()
	if rpioRefCount == 0 {
		if err := rpio.Open(); err != nil {
			return fmt.Errorf("pwm: open gpio memory: %w", err)
		}
	}
	rpioRefCount++
	return nil
}

func releaseRpio() error {
	rpioMutex.Lock()
	defer rpioMutex.Unlock()
	rpioRefCount--
	if rpioRefCount > 0 {
		return nil
	}
	rpioRefCount = 0
	return rpio.Close()
}
