package servo

import (
	"math"
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/pwm"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/markusressel/servo2go/internal/util"
)

// number of commanded angles used for the moving average
const angleWindowSize = 10

// Servo is the angle driver of a single hobby servo. It exclusively owns its PWM channel.
type Servo struct {
	config  configuration.ServoConfig
	limit   AngleLimit
	channel pwm.Channel

	mu        sync.Mutex
	angle     int
	duty      uint32
	active    bool
	commanded bool
	angleAvg  *rolling.PointPolicy
}

func NewServo(config configuration.ServoConfig, channel pwm.Channel) *Servo {
	return &Servo{
		config:   config,
		limit:    NewAngleLimit(config.AngleLimit),
		channel:  channel,
		angleAvg: util.CreateRollingWindow(angleWindowSize),
	}
}

// Open configures the PWM backend of the given servo config and returns its driver.
func Open(config configuration.ServoConfig) (*Servo, error) {
	channel, err := pwm.NewChannel(config)
	if err != nil {
		return nil, err
	}
	return NewServo(config, channel), nil
}

func (s *Servo) GetId() string {
	return s.config.ID
}

func (s *Servo) GetConfig() configuration.ServoConfig {
	return s.config
}

func (s *Servo) GetAngleLimit() AngleLimit {
	return s.limit
}

// DutyForAngle returns the duty value SetAngle would write for the given angle.
func (s *Servo) DutyForAngle(angle int) uint32 {
	pulse := PulseWidth(s.limit.Clamp(angle))
	return Duty(pulse, s.config.Frequency, s.config.Resolution, s.config.DutyFormula)
}

// SetAngle clamps the angle to the configured limit, converts it to a duty value and writes it.
// Out of range angles are never rejected.
func (s *Servo) SetAngle(angle int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	angle = s.limit.Clamp(angle)
	ui.Info("[SERVO] Moving %s to %d° on pin %d", s.config.ID, angle, s.config.Pin)
	duty := Duty(PulseWidth(angle), s.config.Frequency, s.config.Resolution, s.config.DutyFormula)

	s.angle = angle
	s.commanded = true
	s.active = true
	s.angleAvg.Append(float64(angle))
	return s.write(duty)
}

// Stop cuts the output (immediate) or returns the servo to its neutral position.
func (s *Servo) Stop(immediate bool) error {
	if !immediate {
		err := s.SetAngle(NeutralAngle)
		ui.Info("[SERVO] Returning %s to neutral position", s.config.ID)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ui.Warning("[SERVO] Emergency stop of %s!", s.config.ID)
	s.active = false
	return s.write(0)
}

func (s *Servo) write(duty uint32) error {
	s.duty = duty
	return s.channel.Write(duty)
}

// GetAngle returns the last commanded angle, after clamping.
func (s *Servo) GetAngle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angle
}

// GetDuty returns the last written duty value.
func (s *Servo) GetDuty() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duty
}

// GetAngleAvg returns the moving average of recently commanded angles,
// NaN when no angle has been commanded yet.
func (s *Servo) GetAngleAvg() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.commanded {
		return math.NaN()
	}
	return util.GetWindowAvg(s.angleAvg)
}

func (s *Servo) GetMaxDuty() uint32 {
	return MaxDuty(s.config.Resolution)
}

// IsActive indicates whether the output currently holds a commanded angle,
// false before the first command and after an immediate stop.
func (s *Servo) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Servo) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel.Close()
}
