package pwm

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/configuration"
)

// Channel is a hardware PWM output that has been configured once with its
// pin, carrier frequency and resolution, and accepts duty writes.
type Channel interface {
	// Write sets the duty count, in [0, 2^resolution - 1].
	Write(duty uint32) error
	// Close releases the channel, leaving the output at duty 0 best effort.
	Close() error
}

// NewChannel configures the backend selected in the given servo config.
func NewChannel(config configuration.ServoConfig) (Channel, error) {
	if config.Memory != nil {
		return NewMemoryChannel(), nil
	}

	if config.File != nil {
		return NewFileChannel(config.File.Path)
	}

	if config.Sysfs != nil {
		return OpenSysfsChannel(*config.Sysfs, config.Channel, config.Frequency, config.Resolution)
	}

	if config.Rpio != nil {
		return OpenRpioChannel(config.Pin, config.Frequency, config.Resolution)
	}

	if config.Pca9685 != nil {
		return OpenPca9685Channel(*config.Pca9685, config.Channel, config.Frequency, config.Resolution)
	}

	return nil, fmt.Errorf("no matching pwm backend for servo: %s", config.ID)
}
