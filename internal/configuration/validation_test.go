package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCanonicalConfig(t *testing.T) {
	// GIVEN
	config := Configuration{}
	ApplyDefaults(&config)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, config.Servos, 1)
	assert.Equal(t, DefaultServoPin, config.Servos[0].Pin)
	assert.Equal(t, DefaultServoFrequency, config.Servos[0].Frequency)
	assert.Equal(t, DefaultServoResolution, config.Servos[0].Resolution)
	assert.Equal(t, DutyFormulaFullScale, config.Servos[0].DutyFormula)
}

func TestValidateDuplicateServoId(t *testing.T) {
	// GIVEN
	servoId := "steering"
	first := DefaultServoConfig()
	second := DefaultServoConfig()
	config := Configuration{
		Servos: []ServoConfig{first, second},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "duplicate servo id detected: "+servoId)
}

func TestValidateServoSubConfigIsMissing(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.Memory = nil
	config := Configuration{Servos: []ServoConfig{servo}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: sub-configuration for pwm backend is missing, use one of: memory | file | sysfs | rpio | pca9685")
}

func TestValidateServoMultipleSubConfigs(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.File = &FilePwmConfig{Path: "/tmp/duty"}
	config := Configuration{Servos: []ServoConfig{servo}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: only one pwm backend can be used per servo definition block")
}

func TestValidateServoResolution(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.Resolution = 32
	config := Configuration{Servos: []ServoConfig{servo}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: invalid resolution 32, must be in [1..20]")
}

func TestValidateAngleLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit AngleLimitConfig
		err   string
	}{
		{"permissive", AngleLimitConfig{Min: 0, Max: 360}, ""},
		{"narrow", AngleLimitConfig{Min: 45, Max: 135}, ""},
		{"inverted", AngleLimitConfig{Min: 120, Max: 60}, "servo steering: angle limit min 120 is greater than max 60"},
		{"too wide", AngleLimitConfig{Min: 0, Max: 720}, "servo steering: angle limit [0, 720] exceeds [0, 360]"},
		{"negative", AngleLimitConfig{Min: -10, Max: 180}, "servo steering: angle limit [-10, 180] exceeds [0, 360]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			servo := DefaultServoConfig()
			limit := tt.limit
			servo.AngleLimit = &limit
			config := Configuration{Servos: []ServoConfig{servo}}

			// WHEN
			err := validateConfig(&config)

			// THEN
			if tt.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.err)
			}
		})
	}
}

func TestValidateUnknownBootSequence(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.BootSequence = "wiggle"
	config := Configuration{Servos: []ServoConfig{servo}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: unsupported boot sequence 'wiggle', use one of: none | oscillate | sweep")
}

func TestValidateFileBackendWithoutPath(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.Memory = nil
	servo.File = &FilePwmConfig{}
	config := Configuration{Servos: []ServoConfig{servo}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: no file path provided")
}

func TestValidatePca9685Channel(t *testing.T) {
	// GIVEN
	servo := DefaultServoConfig()
	servo.Memory = nil
	servo.Channel = 16
	servo.Pca9685 = &Pca9685PwmConfig{}
	config := Configuration{Servos: []ServoConfig{servo}}
	ApplyDefaults(&config)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "servo steering: pca9685 channel must be in [0..15], got 16")
}

func TestValidateMotorDuplicateLines(t *testing.T) {
	// GIVEN
	config := Configuration{
		Servos: []ServoConfig{DefaultServoConfig()},
		Motor: &MotorConfig{
			Gpio: &GpioMotorConfig{
				Chip:          DefaultGpioChip,
				LeftForward:   5,
				LeftBackward:  6,
				RightForward:  5,
				RightBackward: 10,
			},
		},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "motor: gpio line 5 is used more than once")
}

func TestApplyDefaultsMotorReferencePins(t *testing.T) {
	// GIVEN
	config := Configuration{
		Motor: &MotorConfig{Gpio: &GpioMotorConfig{}},
	}

	// WHEN
	ApplyDefaults(&config)

	// THEN
	assert.Equal(t, DefaultGpioChip, config.Motor.Gpio.Chip)
	assert.Equal(t, []int{5, 6, 9, 10}, config.Motor.Gpio.Lines())
	assert.NoError(t, validateConfig(&config))
}
