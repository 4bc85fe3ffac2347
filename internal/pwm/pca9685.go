package pwm

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/configuration"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// the PCA9685 counts 4096 steps per period
const pca9685Resolution = 12

// Pca9685Channel drives one output of a PCA9685 16 channel servo hat over I2C.
type Pca9685Channel struct {
	bus        i2c.BusCloser
	dev        *pca9685.Dev
	channel    int
	resolution int
}

func OpenPca9685Channel(config configuration.Pca9685PwmConfig, channel int, frequency int, resolution int) (*Pca9685Channel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("pwm: init periph host: %w", err)
	}

	bus, err := i2creg.Open(config.Bus)
	if err != nil {
		return nil, fmt.Errorf("pwm: open i2c bus %s: %w", config.Bus, err)
	}

	dev, err := pca9685.NewI2C(bus, uint16(config.Address))
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("pwm: pca9685 at 0x%X: %w", config.Address, err)
	}

	if err := dev.SetPwmFreq(physic.Frequency(frequency) * physic.Hertz); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("pwm: pca9685 set frequency: %w", err)
	}

	return &Pca9685Channel{
		bus:        bus,
		dev:        dev,
		channel:    channel,
		resolution: resolution,
	}, nil
}

// ScaleToDevice converts a duty count at the given resolution to the 12 bit
// counter of the PCA9685.
func ScaleToDevice(duty uint32, resolution int) gpio.Duty {
	var scaled uint64
	if resolution >= pca9685Resolution {
		scaled = uint64(duty) >> uint(resolution-pca9685Resolution)
	} else {
		scaled = uint64(duty) << uint(pca9685Resolution-resolution)
	}
	maxCount := uint64(1)<<pca9685Resolution - 1
	if scaled > maxCount {
		scaled = maxCount
	}
	return gpio.Duty(scaled)
}

func (c *Pca9685Channel) Write(duty uint32) error {
	return c.dev.SetPwm(c.channel, 0, ScaleToDevice(duty, c.resolution))
}

func (c *Pca9685Channel) Close() error {
	_ = c.dev.SetPwm(c.channel, 0, 0)
	return c.bus.Close()
}
