//go:build !linux

package motor

import (
	"errors"

	"github.com/markusressel/servo2go/internal/configuration"
)

func OpenGpioOutput(config configuration.GpioMotorConfig) (Output, error) {
	return nil, errors.New("motor: gpio backend is only supported on linux")
}
