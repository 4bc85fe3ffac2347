package sequence

import (
	"fmt"
	"time"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/ui"
)

const (
	OscillationDuration = 30 * time.Second
	OscillationHold     = 1 * time.Second
	OscillationLow      = 60
	OscillationHigh     = 120
	OscillationFinal    = 90

	SweepMin  = 0
	SweepMax  = 180
	SweepStep = 10
	SweepHold = 500 * time.Millisecond
)

// Target is the angle driver exercised by a sequence.
type Target interface {
	GetId() string
	SetAngle(angle int) error
}

// Result summarizes a completed sequence.
type Result struct {
	Sequence   string
	Commands   int
	ElapsedMs  uint32
	FinalAngle int
}

type runner struct {
	target Target
	clock  Clock
	result Result
}

func (r *runner) set(angle int) {
	if err := r.target.SetAngle(angle); err != nil {
		ui.Warning("[SERVO] Unable to set %s to %d°: %v", r.target.GetId(), angle, err)
	}
	r.result.Commands++
	r.result.FinalAngle = angle
}

// Oscillate alternates between 60° and 120°, holding each for a second, until
// 30 seconds have passed since the start. It finishes at 90°.
// The call blocks for its full duration and cannot be cancelled.
func Oscillate(target Target, clock Clock) Result {
	r := &runner{target: target, clock: clock, result: Result{Sequence: configuration.SequenceOscillate}}

	ui.Info("Starting 30-second oscillation between %d° and %d° on servo %s", OscillationLow, OscillationHigh, target.GetId())
	start := clock.Millis()
	limit := uint32(OscillationDuration.Milliseconds())

	for Elapsed(start, clock.Millis()) < limit {
		r.set(OscillationLow)
		clock.Sleep(OscillationHold)
		r.set(OscillationHigh)
		clock.Sleep(OscillationHold)
	}
	r.set(OscillationFinal)
	r.result.ElapsedMs = Elapsed(start, clock.Millis())

	ui.Info("Oscillation complete")
	return r.result
}

// Sweep steps from 0° to 180° and back in 10° increments, holding each step
// for 500ms. It finishes at 0°.
// The call blocks for its full duration and cannot be cancelled.
func Sweep(target Target, clock Clock) Result {
	r := &runner{target: target, clock: clock, result: Result{Sequence: configuration.SequenceSweep}}

	ui.Info("Starting sweep from %d° to %d° on servo %s", SweepMin, SweepMax, target.GetId())
	start := clock.Millis()

	for angle := SweepMin; angle <= SweepMax; angle += SweepStep {
		r.set(angle)
		clock.Sleep(SweepHold)
	}
	for angle := SweepMax; angle >= SweepMin; angle -= SweepStep {
		r.set(angle)
		clock.Sleep(SweepHold)
	}
	r.result.ElapsedMs = Elapsed(start, clock.Millis())

	ui.Info("Sweep complete")
	return r.result
}

// Run executes the sequence with the given name.
func Run(name string, target Target, clock Clock) (Result, error) {
	switch name {
	case configuration.SequenceOscillate:
		return Oscillate(target, clock), nil
	case configuration.SequenceSweep:
		return Sweep(target, clock), nil
	}
	return Result{}, fmt.Errorf("unknown sequence '%s', use one of: %s | %s", name, configuration.SequenceOscillate, configuration.SequenceSweep)
}
