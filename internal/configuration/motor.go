package configuration

const DefaultGpioChip = "gpiochip0"

type MotorConfig struct {
	Memory *MemoryMotorConfig `json:"memory,omitempty" yaml:"memory,omitempty"`
	Gpio   *GpioMotorConfig   `json:"gpio,omitempty" yaml:"gpio,omitempty"`
}

type MemoryMotorConfig struct{}

// GpioMotorConfig holds the line offsets of the H-bridge inputs.
type GpioMotorConfig struct {
	Chip          string `json:"chip" yaml:"chip"`
	LeftForward   int    `json:"leftForward" yaml:"leftForward"`
	LeftBackward  int    `json:"leftBackward" yaml:"leftBackward"`
	RightForward  int    `json:"rightForward" yaml:"rightForward"`
	RightBackward int    `json:"rightBackward" yaml:"rightBackward"`
}

func (c GpioMotorConfig) Lines() []int {
	return []int{c.LeftForward, c.LeftBackward, c.RightForward, c.RightBackward}
}

func applyGpioMotorDefaults(config *GpioMotorConfig) {
	if len(config.Chip) == 0 {
		config.Chip = DefaultGpioChip
	}
	if config.LeftForward == 0 && config.LeftBackward == 0 && config.RightForward == 0 && config.RightBackward == 0 {
		config.LeftForward = 5
		config.LeftBackward = 6
		config.RightForward = 9
		config.RightBackward = 10
	}
}
