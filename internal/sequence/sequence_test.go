package sequence

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/markusressel/servo2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
)

type command struct {
	angle int
	at    uint32
}

type recordingTarget struct {
	clock    *testingutils.FakeClock
	commands []command
	err      error
}

func (r *recordingTarget) GetId() string {
	return "steering"
}

func (r *recordingTarget) SetAngle(angle int) error {
	r.commands = append(r.commands, command{angle: angle, at: r.clock.Now})
	return r.err
}

func (r *recordingTarget) angles() []int {
	var result []int
	for _, c := range r.commands {
		result = append(result, c.angle)
	}
	return result
}

func expectedOscillation() []int {
	var expected []int
	for i := 0; i < 15; i++ {
		expected = append(expected, 60, 120)
	}
	return append(expected, 90)
}

func TestOscillate(t *testing.T) {
	// GIVEN
	clock := testingutils.NewFakeClock(0)
	target := &recordingTarget{clock: clock}

	// WHEN
	result := Oscillate(target, clock)

	// THEN
	assert.Equal(t, expectedOscillation(), target.angles())
	assert.Equal(t, 31, result.Commands)
	assert.Equal(t, 90, result.FinalAngle)
	assert.Equal(t, uint32(30000), result.ElapsedMs)
	for _, d := range clock.Sleeps {
		assert.Equal(t, time.Second, d)
	}
	// the final command is issued once 30s have passed
	assert.Equal(t, uint32(30000), target.commands[len(target.commands)-1].at)
}

func TestOscillate_AcrossCounterWraparound(t *testing.T) {
	// GIVEN
	clock := testingutils.NewFakeClock(math.MaxUint32 - 4500)
	target := &recordingTarget{clock: clock}

	// WHEN
	result := Oscillate(target, clock)

	// THEN
	assert.Equal(t, expectedOscillation(), target.angles())
	assert.Equal(t, uint32(30000), result.ElapsedMs)
}

type slowClock struct {
	*testingutils.FakeClock
}

// every reading costs 7ms
func (c slowClock) Millis() uint32 {
	c.Sleep(7 * time.Millisecond)
	return c.FakeClock.Millis()
}

func TestOscillate_StopsOnceElapsed(t *testing.T) {
	// GIVEN
	clock := slowClock{testingutils.NewFakeClock(0)}
	target := &recordingTarget{clock: clock.FakeClock}

	// WHEN
	result := Oscillate(target, clock)

	// THEN
	angles := target.angles()
	assert.Equal(t, 90, angles[len(angles)-1])
	for i, angle := range angles[:len(angles)-1] {
		if i%2 == 0 {
			assert.Equal(t, 60, angle)
		} else {
			assert.Equal(t, 120, angle)
		}
	}
	assert.GreaterOrEqual(t, result.ElapsedMs, uint32(30000))
	// the last pair started before 30s had passed
	lastPairStart := target.commands[len(target.commands)-3].at
	assert.Less(t, lastPairStart, uint32(30000))
}

func TestOscillate_IgnoresWriteErrors(t *testing.T) {
	// GIVEN
	clock := testingutils.NewFakeClock(0)
	target := &recordingTarget{clock: clock, err: errors.New("bus error")}

	// WHEN
	result := Oscillate(target, clock)

	// THEN
	assert.Equal(t, expectedOscillation(), target.angles())
	assert.Equal(t, 90, result.FinalAngle)
}

func TestSweep(t *testing.T) {
	// GIVEN
	clock := testingutils.NewFakeClock(0)
	target := &recordingTarget{clock: clock}

	var forward, backward []int
	for angle := 0; angle <= 180; angle += 10 {
		forward = append(forward, angle)
		backward = append([]int{angle}, backward...)
	}

	// WHEN
	result := Sweep(target, clock)

	// THEN
	assert.Len(t, forward, 19)
	assert.Len(t, backward, 19)
	assert.Equal(t, append(forward, backward...), target.angles())
	assert.Equal(t, 38, result.Commands)
	assert.Equal(t, 0, result.FinalAngle)
	assert.Equal(t, uint32(38*500), result.ElapsedMs)

	assert.Len(t, clock.Sleeps, 38)
	for i, c := range target.commands {
		assert.Equal(t, uint32(i*500), c.at)
	}
}

func TestRun(t *testing.T) {
	// GIVEN
	clock := testingutils.NewFakeClock(0)
	target := &recordingTarget{clock: clock}

	// WHEN
	result, err := Run("sweep", target, clock)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "sweep", result.Sequence)

	// WHEN
	_, err = Run("wiggle", target, clock)

	// THEN
	assert.EqualError(t, err, "unknown sequence 'wiggle', use one of: oscillate | sweep")
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, uint32(100), Elapsed(50, 150))
	assert.Equal(t, uint32(10), Elapsed(math.MaxUint32-4, 5))
}

func TestSystemClock(t *testing.T) {
	// GIVEN
	clock := NewSystemClock()
	start := clock.Millis()

	// WHEN
	clock.Sleep(20 * time.Millisecond)

	// THEN
	assert.GreaterOrEqual(t, Elapsed(start, clock.Millis()), uint32(20))
}
