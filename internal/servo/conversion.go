package servo

import (
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/util"
)

const (
	MinAngle = 0
	MaxAngle = 180

	// NeutralAngle is the center position used by a non-immediate stop.
	NeutralAngle = 90

	// MinPulseWidth and MaxPulseWidth are the pulse widths in microseconds
	// at MinAngle and MaxAngle.
	MinPulseWidth = 500
	MaxPulseWidth = 2400

	microsecondsPerSecond = 1_000_000
)

// PulseWidth maps an angle in [0, 180] linearly to a pulse width in [500, 2400] µs,
// truncating the intermediate division. Angles outside the domain extrapolate.
func PulseWidth(angle int) int {
	return util.MapRange(angle, MinAngle, MaxAngle, MinPulseWidth, MaxPulseWidth)
}

// MaxDuty returns the largest duty value representable with the given resolution.
func MaxDuty(resolution int) uint32 {
	return uint32(1<<uint(resolution)) - 1
}

// Duty converts a pulse width in microseconds to a duty count for the given
// carrier frequency and resolution. The result is saturated to [0, MaxDuty(resolution)].
func Duty(pulseWidth int, frequency int, resolution int, formula configuration.DutyFormula) uint32 {
	if pulseWidth <= 0 || frequency <= 0 {
		return 0
	}

	var duty uint64
	switch formula {
	case configuration.DutyFormulaMaxCount:
		fraction := float64(pulseWidth) * float64(frequency) / float64(microsecondsPerSecond)
		duty = uint64(fraction * float64(MaxDuty(resolution)))
	default:
		duty = uint64(pulseWidth) * uint64(frequency) * (uint64(1) << uint(resolution)) / microsecondsPerSecond
	}

	maxDuty := uint64(MaxDuty(resolution))
	if duty > maxDuty {
		return uint32(maxDuty)
	}
	return uint32(duty)
}

// AngleLimit is the inclusive range every commanded angle is clamped to
// before conversion.
type AngleLimit struct {
	Min int
	Max int
}

var (
	// DefaultAngleLimit is the logical servo domain.
	DefaultAngleLimit = AngleLimit{Min: MinAngle, Max: MaxAngle}
	// PermissiveAngleLimit accepts the extended range some call sites send.
	PermissiveAngleLimit = AngleLimit{Min: 0, Max: configuration.MaxAngle}
)

func NewAngleLimit(config *configuration.AngleLimitConfig) AngleLimit {
	if config == nil {
		return DefaultAngleLimit
	}
	return AngleLimit{Min: config.Min, Max: config.Max}
}

func (l AngleLimit) Clamp(angle int) int {
	return util.Coerce(angle, l.Min, l.Max)
}
