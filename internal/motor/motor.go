package motor

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/ui"
)

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionStop     Direction = "stop"
)

// Directions in the order they are usually presented.
var Directions = []Direction{DirectionForward, DirectionBackward, DirectionLeft, DirectionRight, DirectionStop}

// line values in the order left forward, left backward, right forward, right backward
var patterns = map[Direction][]int{
	DirectionForward:  {1, 0, 1, 0},
	DirectionBackward: {0, 1, 0, 1},
	DirectionLeft:     {0, 1, 1, 0},
	DirectionRight:    {1, 0, 0, 1},
	DirectionStop:     {0, 0, 0, 0},
}

// Pattern returns the H-bridge line values for the given direction.
func Pattern(direction Direction) ([]int, error) {
	pattern, ok := patterns[direction]
	if !ok {
		return nil, fmt.Errorf("unknown direction '%s'", direction)
	}
	result := make([]int, len(pattern))
	copy(result, pattern)
	return result, nil
}

// ParseDirection accepts the single character commands (F, B, L, R, S) as well
// as the direction names, case-insensitive.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "f", "forward":
		return DirectionForward, nil
	case "b", "backward", "back":
		return DirectionBackward, nil
	case "l", "left":
		return DirectionLeft, nil
	case "r", "right":
		return DirectionRight, nil
	case "s", "stop":
		return DirectionStop, nil
	}
	return "", fmt.Errorf("unknown direction '%s', use one of: F | B | L | R | S", value)
}

// Output sets all four H-bridge lines at once.
type Output interface {
	SetValues(values []int) error
	Close() error
}

type Driver interface {
	Forward() error
	Backward() error
	TurnLeft() error
	TurnRight() error
	Stop() error

	Drive(direction Direction) error
	GetDirection() Direction

	Close() error
}

type driver struct {
	output Output

	mu        sync.Mutex
	direction Direction
}

func NewMotor(output Output) Driver {
	return &driver{
		output:    output,
		direction: DirectionStop,
	}
}

// NewDriver creates the motor driver described by the given configuration.
func NewDriver(config configuration.MotorConfig) (Driver, error) {
	if config.Memory != nil {
		return NewMotor(NewMemoryOutput()), nil
	}

	if config.Gpio != nil {
		output, err := OpenGpioOutput(*config.Gpio)
		if err != nil {
			return nil, err
		}
		return NewMotor(output), nil
	}

	return nil, errors.New("no matching motor backend")
}

func (d *driver) Forward() error {
	return d.Drive(DirectionForward)
}

func (d *driver) Backward() error {
	return d.Drive(DirectionBackward)
}

func (d *driver) TurnLeft() error {
	return d.Drive(DirectionLeft)
}

func (d *driver) TurnRight() error {
	return d.Drive(DirectionRight)
}

func (d *driver) Stop() error {
	return d.Drive(DirectionStop)
}

func (d *driver) Drive(direction Direction) error {
	pattern, err := Pattern(direction)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ui.Debug("[MOTOR] %s %v", direction, pattern)
	if err := d.output.SetValues(pattern); err != nil {
		return fmt.Errorf("motor: %s: %w", direction, err)
	}
	d.direction = direction
	return nil
}

func (d *driver) GetDirection() Direction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.direction
}

// Close stops the motors and releases the output.
func (d *driver) Close() error {
	if err := d.Stop(); err != nil {
		ui.Warning("[MOTOR] Unable to stop motors: %v", err)
	}
	return d.output.Close()
}
