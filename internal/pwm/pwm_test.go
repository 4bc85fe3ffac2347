package pwm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/util"
	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
)

func TestNewChannel_Memory(t *testing.T) {
	// GIVEN
	config := configuration.DefaultServoConfig()

	// WHEN
	channel, err := NewChannel(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &MemoryChannel{}, channel)
}

func TestNewChannel_File(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "duty")
	config := configuration.DefaultServoConfig()
	config.Memory = nil
	config.File = &configuration.FilePwmConfig{Path: path}

	// WHEN
	channel, err := NewChannel(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileChannel{}, channel)
}

func TestNewChannel_NoBackend(t *testing.T) {
	// GIVEN
	config := configuration.DefaultServoConfig()
	config.Memory = nil

	// WHEN
	_, err := NewChannel(config)

	// THEN
	assert.EqualError(t, err, "no matching pwm backend for servo: steering")
}

func TestMemoryChannel_RecordsWrites(t *testing.T) {
	// GIVEN
	channel := NewMemoryChannel()

	// WHEN
	_ = channel.Write(593)
	_ = channel.Write(0)

	// THEN
	assert.Equal(t, []uint32{593, 0}, channel.Writes())
	last, ok := channel.Last()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), last)
}

func TestMemoryChannel_WriteAfterClose(t *testing.T) {
	// GIVEN
	channel := NewMemoryChannel()
	assert.NoError(t, channel.Close())

	// WHEN
	err := channel.Write(593)

	// THEN
	assert.ErrorIs(t, err, ErrChannelClosed)
	assert.True(t, channel.Closed())
	assert.Empty(t, channel.Writes())
}

func TestFileChannel_WriteAndClose(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "duty")
	channel, err := NewFileChannel(path)
	assert.NoError(t, err)

	// WHEN
	err = channel.Write(983)

	// THEN
	assert.NoError(t, err)
	value, err := util.ReadIntFromFile(channel.Path)
	assert.NoError(t, err)
	assert.Equal(t, 983, value)

	// WHEN
	err = channel.Close()

	// THEN
	assert.NoError(t, err)
	value, err = util.ReadIntFromFile(channel.Path)
	assert.NoError(t, err)
	assert.Equal(t, 0, value)
}

func TestFileChannel_WriteMissingDirectory(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "missing", "duty")
	channel, err := NewFileChannel(path)
	assert.NoError(t, err)

	// WHEN
	err = channel.Write(1)

	// THEN
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "pwm: write "+path))
}

func fakeSysfsChip(t *testing.T) (base string, pwmPath string) {
	base = t.TempDir()
	pwmPath = filepath.Join(base, "pwmchip0", "pwm0")
	assert.NoError(t, os.MkdirAll(pwmPath, 0o755))
	return base, pwmPath
}

func readSysfs(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestOpenSysfsChannel_ConfiguresPeriod(t *testing.T) {
	// GIVEN
	base, pwmPath := fakeSysfsChip(t)
	config := configuration.SysfsPwmConfig{Base: base, Chip: 0}

	// WHEN
	channel, err := OpenSysfsChannel(config, 0, 50, 13)

	// THEN
	assert.NoError(t, err)
	assert.NotNil(t, channel)
	assert.Equal(t, "20000000", readSysfs(t, filepath.Join(pwmPath, "period")))
	assert.Equal(t, "0", readSysfs(t, filepath.Join(pwmPath, "duty_cycle")))
	assert.Equal(t, "1", readSysfs(t, filepath.Join(pwmPath, "enable")))
}

func TestSysfsChannel_Write(t *testing.T) {
	// GIVEN
	base, pwmPath := fakeSysfsChip(t)
	channel, err := OpenSysfsChannel(configuration.SysfsPwmConfig{Base: base}, 0, 50, 13)
	assert.NoError(t, err)

	// WHEN
	err = channel.Write(593)

	// THEN
	// 593 / 8192 * 20ms
	assert.NoError(t, err)
	assert.Equal(t, "1447753", readSysfs(t, filepath.Join(pwmPath, "duty_cycle")))

	// WHEN
	err = channel.Close()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "0", readSysfs(t, filepath.Join(pwmPath, "duty_cycle")))
	assert.Equal(t, "0", readSysfs(t, filepath.Join(pwmPath, "enable")))
}

func TestSysfsChannel_DutyCycleNSSaturates(t *testing.T) {
	// GIVEN
	channel := &SysfsChannel{periodNS: 20_000_000, resolution: 13}

	// THEN
	assert.Equal(t, uint64(0), channel.DutyCycleNS(0))
	assert.Equal(t, uint64(10_000_000), channel.DutyCycleNS(4096))
	assert.Equal(t, uint64(20_000_000), channel.DutyCycleNS(1<<20))
}

func TestOpenSysfsChannel_MissingChip(t *testing.T) {
	// GIVEN
	base := t.TempDir()

	// WHEN
	_, err := OpenSysfsChannel(configuration.SysfsPwmConfig{Base: base, Chip: 3}, 0, 50, 13)

	// THEN
	assert.Error(t, err)
}

func TestScaleToDevice(t *testing.T) {
	assert.Equal(t, gpio.Duty(296), ScaleToDevice(593, 13))
	assert.Equal(t, gpio.Duty(593), ScaleToDevice(593, 12))
	assert.Equal(t, gpio.Duty(1024), ScaleToDevice(256, 10))
	assert.Equal(t, gpio.Duty(4095), ScaleToDevice(1<<16-1, 16))
}

func TestOpenRpioChannel_RejectsNonPwmPin(t *testing.T) {
	// WHEN
	_, err := OpenRpioChannel(25, 50, 13)

	// THEN
	assert.EqualError(t, err, "pwm: gpio 25 has no hardware pwm function, use one of 12 | 13 | 18 | 19")
}

func TestOpenRpioChannel_RejectsClockOutOfRange(t *testing.T) {
	// WHEN
	_, err := OpenRpioChannel(18, 50, 6)

	// THEN
	assert.EqualError(t, err, "pwm: 50 Hz at 6 bit needs a 3200 Hz pwm clock, supported is [4688..9600000]")
}
