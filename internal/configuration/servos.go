package configuration

const (
	SequenceNone      = "none"
	SequenceOscillate = "oscillate"
	SequenceSweep     = "sweep"
)

// Canonical hardware configuration of the steering servo.
const (
	DefaultServoId         = "steering"
	DefaultServoPin        = 25
	DefaultServoChannel    = 0
	DefaultServoFrequency  = 50
	DefaultServoResolution = 13
)

type ServoConfig struct {
	ID         string `json:"id" yaml:"id"`
	Pin        int    `json:"pin" yaml:"pin"`
	Channel    int    `json:"channel" yaml:"channel"`
	Frequency  int    `json:"frequency" yaml:"frequency"`
	Resolution int    `json:"resolution" yaml:"resolution"`

	DutyFormula DutyFormula       `json:"dutyFormula" yaml:"dutyFormula"`
	AngleLimit  *AngleLimitConfig `json:"angleLimit,omitempty" yaml:"angleLimit,omitempty"`

	// BootSequence is the diagnostic run once at daemon start, before anything else.
	BootSequence string `json:"bootSequence" yaml:"bootSequence"`

	Memory  *MemoryPwmConfig  `json:"memory,omitempty" yaml:"memory,omitempty"`
	File    *FilePwmConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Sysfs   *SysfsPwmConfig   `json:"sysfs,omitempty" yaml:"sysfs,omitempty"`
	Rpio    *RpioPwmConfig    `json:"rpio,omitempty" yaml:"rpio,omitempty"`
	Pca9685 *Pca9685PwmConfig `json:"pca9685,omitempty" yaml:"pca9685,omitempty"`
}

// AngleLimitConfig is the inclusive range commanded angles are clamped to.
type AngleLimitConfig struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

type MemoryPwmConfig struct{}

type FilePwmConfig struct {
	Path string `json:"path" yaml:"path"`
}

type SysfsPwmConfig struct {
	// Base defaults to /sys/class/pwm
	Base string `json:"base,omitempty" yaml:"base,omitempty"`
	Chip int    `json:"chip" yaml:"chip"`
}

// RpioPwmConfig drives the SoC PWM of a Raspberry Pi on the servo pin.
type RpioPwmConfig struct{}

type Pca9685PwmConfig struct {
	Bus     string `json:"bus" yaml:"bus"`
	Address int    `json:"address" yaml:"address"`
}

// DefaultServoConfig returns the canonical steering servo on the in-memory backend.
func DefaultServoConfig() ServoConfig {
	return ServoConfig{
		ID:           DefaultServoId,
		Pin:          DefaultServoPin,
		Channel:      DefaultServoChannel,
		Frequency:    DefaultServoFrequency,
		Resolution:   DefaultServoResolution,
		DutyFormula:  DutyFormulaFullScale,
		BootSequence: SequenceNone,
		Memory:       &MemoryPwmConfig{},
	}
}

func applyServoDefaults(config *ServoConfig) {
	if config.Frequency == 0 {
		config.Frequency = DefaultServoFrequency
	}
	if config.Resolution == 0 {
		config.Resolution = DefaultServoResolution
	}
	if len(config.DutyFormula) == 0 {
		config.DutyFormula = DutyFormulaFullScale
	}
	if len(config.BootSequence) == 0 {
		config.BootSequence = SequenceNone
	}
	if config.Sysfs != nil && len(config.Sysfs.Base) == 0 {
		config.Sysfs.Base = "/sys/class/pwm"
	}
	if config.Pca9685 != nil {
		if len(config.Pca9685.Bus) == 0 {
			config.Pca9685.Bus = "I2C1"
		}
		if config.Pca9685.Address == 0 {
			config.Pca9685.Address = 0x40
		}
	}
}
