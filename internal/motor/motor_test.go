package motor

import (
	"errors"
	"testing"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type failingOutput struct {
	MemoryOutput
}

func (o *failingOutput) SetValues(values []int) error {
	return errors.New("line busy")
}

func TestDriver_Commands(t *testing.T) {
	// GIVEN
	output := NewMemoryOutput()
	m := NewMotor(output)

	commands := []struct {
		run       func() error
		direction Direction
		expected  []int
	}{
		{m.Forward, DirectionForward, []int{1, 0, 1, 0}},
		{m.Backward, DirectionBackward, []int{0, 1, 0, 1}},
		{m.TurnLeft, DirectionLeft, []int{0, 1, 1, 0}},
		{m.TurnRight, DirectionRight, []int{1, 0, 0, 1}},
		{m.Stop, DirectionStop, []int{0, 0, 0, 0}},
	}

	for _, c := range commands {
		// WHEN
		err := c.run()

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, c.expected, output.Last())
		assert.Equal(t, c.direction, m.GetDirection())
	}
	assert.Len(t, output.Writes(), len(commands))
}

func TestDriver_InitiallyStopped(t *testing.T) {
	m := NewMotor(NewMemoryOutput())
	assert.Equal(t, DirectionStop, m.GetDirection())
}

func TestDriver_UnknownDirection(t *testing.T) {
	// GIVEN
	output := NewMemoryOutput()
	m := NewMotor(output)

	// WHEN
	err := m.Drive("sideways")

	// THEN
	assert.EqualError(t, err, "unknown direction 'sideways'")
	assert.Empty(t, output.Writes())
}

func TestDriver_OutputError(t *testing.T) {
	// GIVEN
	m := NewMotor(&failingOutput{})

	// WHEN
	err := m.Forward()

	// THEN
	assert.EqualError(t, err, "motor: forward: line busy")
	assert.Equal(t, DirectionStop, m.GetDirection())
}

func TestDriver_CloseStops(t *testing.T) {
	// GIVEN
	output := NewMemoryOutput()
	m := NewMotor(output)
	_ = m.Forward()

	// WHEN
	err := m.Close()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, output.Last())
	assert.ErrorIs(t, output.SetValues([]int{1, 0, 1, 0}), ErrOutputClosed)
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"F":        DirectionForward,
		"f":        DirectionForward,
		"forward":  DirectionForward,
		"B":        DirectionBackward,
		"Backward": DirectionBackward,
		"L":        DirectionLeft,
		"R":        DirectionRight,
		"right":    DirectionRight,
		"S":        DirectionStop,
		" stop ":   DirectionStop,
	}

	for input, expected := range cases {
		direction, err := ParseDirection(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, direction, input)
	}

	_, err := ParseDirection("X")
	assert.EqualError(t, err, "unknown direction 'X', use one of: F | B | L | R | S")
}

func TestPattern_ReturnsCopy(t *testing.T) {
	// GIVEN
	pattern, _ := Pattern(DirectionForward)

	// WHEN
	pattern[0] = 0

	// THEN
	again, _ := Pattern(DirectionForward)
	assert.Equal(t, []int{1, 0, 1, 0}, again)
}

func TestNewDriver(t *testing.T) {
	// GIVEN
	config := configuration.MotorConfig{Memory: &configuration.MemoryMotorConfig{}}

	// WHEN
	d, err := NewDriver(config)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, DirectionStop, d.GetDirection())

	// WHEN
	_, err = NewDriver(configuration.MotorConfig{})

	// THEN
	assert.EqualError(t, err, "no matching motor backend")
}
