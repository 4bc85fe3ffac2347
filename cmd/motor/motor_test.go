package motor

import (
	"testing"
	"time"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestCheckDuration(t *testing.T) {
	// GIVEN
	gpio := configuration.MotorConfig{Gpio: &configuration.GpioMotorConfig{}}
	memory := configuration.MotorConfig{Memory: &configuration.MemoryMotorConfig{}}

	// THEN
	assert.NoError(t, checkDuration(gpio, defaultDuration))
	assert.NoError(t, checkDuration(memory, 0))
	assert.EqualError(t, checkDuration(gpio, 0), "the gpio backend needs a positive --duration, its lines are released on exit")
	assert.EqualError(t, checkDuration(memory, -time.Second), "duration must not be negative, was -1s")
}

func TestDurationFlag_Default(t *testing.T) {
	flag := Command.Flags().Lookup("duration")
	assert.Equal(t, defaultDuration.String(), flag.DefValue)
}
