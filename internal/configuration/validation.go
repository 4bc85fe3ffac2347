package configuration

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	MaxResolution = 20
	MaxAngle      = 360
)

var SupportedSequences = []string{SequenceNone, SequenceOscillate, SequenceSweep}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if err := validateServos(config); err != nil {
		return err
	}
	if err := validateMotor(config.Motor); err != nil {
		return err
	}
	if config.Api.Enabled {
		if config.Api.Port <= 0 || config.Api.Port >= 65535 {
			return fmt.Errorf("api: invalid port %d", config.Api.Port)
		}
	}
	return nil
}

func validateServos(config *Configuration) error {
	if len(config.Servos) == 0 {
		return fmt.Errorf("no servo configured")
	}

	var ids []string
	for _, servoConfig := range config.Servos {
		if len(servoConfig.ID) <= 0 {
			return fmt.Errorf("servo without id detected")
		}
		if slices.Contains(ids, servoConfig.ID) {
			return fmt.Errorf("duplicate servo id detected: %s", servoConfig.ID)
		}
		ids = append(ids, servoConfig.ID)

		if err := validateServo(servoConfig); err != nil {
			return err
		}
	}

	return nil
}

func validateServo(config ServoConfig) error {
	subConfigs := 0
	if config.Memory != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if config.Sysfs != nil {
		subConfigs++
	}
	if config.Rpio != nil {
		subConfigs++
	}
	if config.Pca9685 != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("servo %s: only one pwm backend can be used per servo definition block", config.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("servo %s: sub-configuration for pwm backend is missing, use one of: memory | file | sysfs | rpio | pca9685", config.ID)
	}

	if config.Frequency <= 0 {
		return fmt.Errorf("servo %s: invalid frequency %d, must be > 0", config.ID, config.Frequency)
	}
	if config.Resolution <= 0 || config.Resolution > MaxResolution {
		return fmt.Errorf("servo %s: invalid resolution %d, must be in [1..%d]", config.ID, config.Resolution, MaxResolution)
	}
	if config.Pin < 0 {
		return fmt.Errorf("servo %s: invalid pin %d", config.ID, config.Pin)
	}
	if config.Channel < 0 {
		return fmt.Errorf("servo %s: invalid channel %d", config.ID, config.Channel)
	}
	if !slices.Contains(SupportedDutyFormulas, config.DutyFormula) {
		return fmt.Errorf("servo %s: unsupported duty formula '%s', use one of: %s | %s", config.ID, config.DutyFormula, DutyFormulaFullScale, DutyFormulaMaxCount)
	}
	if !slices.Contains(SupportedSequences, config.BootSequence) {
		return fmt.Errorf("servo %s: unsupported boot sequence '%s', use one of: %s", config.ID, config.BootSequence, strings.Join(SupportedSequences, " | "))
	}

	if limit := config.AngleLimit; limit != nil {
		if limit.Min < 0 || limit.Max > MaxAngle {
			return fmt.Errorf("servo %s: angle limit [%d, %d] exceeds [0, %d]", config.ID, limit.Min, limit.Max, MaxAngle)
		}
		if limit.Min > limit.Max {
			return fmt.Errorf("servo %s: angle limit min %d is greater than max %d", config.ID, limit.Min, limit.Max)
		}
	}

	if config.File != nil && len(config.File.Path) <= 0 {
		return fmt.Errorf("servo %s: no file path provided", config.ID)
	}
	if config.Sysfs != nil && config.Sysfs.Chip < 0 {
		return fmt.Errorf("servo %s: invalid pwmchip index %d", config.ID, config.Sysfs.Chip)
	}
	if config.Pca9685 != nil {
		if config.Channel > 15 {
			return fmt.Errorf("servo %s: pca9685 channel must be in [0..15], got %d", config.ID, config.Channel)
		}
		if config.Pca9685.Address <= 0 || config.Pca9685.Address > 0x7F {
			return fmt.Errorf("servo %s: invalid i2c address 0x%X", config.ID, config.Pca9685.Address)
		}
	}

	return nil
}

func validateMotor(config *MotorConfig) error {
	if config == nil {
		return nil
	}

	subConfigs := 0
	if config.Memory != nil {
		subConfigs++
	}
	if config.Gpio != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("motor: only one motor backend can be used")
	}
	if subConfigs <= 0 {
		return fmt.Errorf("motor: sub-configuration for motor backend is missing, use one of: memory | gpio")
	}

	if config.Gpio != nil {
		var seen []int
		for _, line := range config.Gpio.Lines() {
			if line < 0 {
				return fmt.Errorf("motor: invalid gpio line %d", line)
			}
			if slices.Contains(seen, line) {
				return fmt.Errorf("motor: gpio line %d is used more than once", line)
			}
			seen = append(seen, line)
		}
	}

	return nil
}
