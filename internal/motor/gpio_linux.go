//go:build linux

package motor

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

const consumer = "servo2go"

type gpioOutput struct {
	lines *gpiocdev.Lines
}

// OpenGpioOutput requests the four H-bridge lines as outputs, initially low.
func OpenGpioOutput(config configuration.GpioMotorConfig) (Output, error) {
	lines, err := gpiocdev.RequestLines(config.Chip, config.Lines(),
		gpiocdev.AsOutput(0, 0, 0, 0),
		gpiocdev.WithConsumer(consumer),
	)
	if err != nil {
		return nil, fmt.Errorf("motor: request lines %v on %s: %w", config.Lines(), config.Chip, err)
	}
	return &gpioOutput{lines: lines}, nil
}

func (o *gpioOutput) SetValues(values []int) error {
	return o.lines.SetValues(values)
}

func (o *gpioOutput) Close() error {
	_ = o.lines.SetValues([]int{0, 0, 0, 0})
	return o.lines.Close()
}
