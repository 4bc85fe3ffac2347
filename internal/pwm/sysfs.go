package pwm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/markusressel/servo2go/internal/configuration"
)

const nanosecondsPerSecond = 1_000_000_000

// SysfsChannel drives a hardware PWM channel via /sys/class/pwm.
//
// The duty count is converted to a duty_cycle in nanoseconds relative to the
// period derived from the carrier frequency.
type SysfsChannel struct {
	chipPath string // <base>/pwmchipN
	pwmPath  string // <base>/pwmchipN/pwmM
	channel  int

	periodNS   uint64
	resolution int
}

func OpenSysfsChannel(config configuration.SysfsPwmConfig, channel int, frequency int, resolution int) (*SysfsChannel, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("pwm: invalid frequency %d", frequency)
	}

	chipPath := filepath.Join(config.Base, fmt.Sprintf("pwmchip%d", config.Chip))
	c := &SysfsChannel{
		chipPath:   chipPath,
		pwmPath:    filepath.Join(chipPath, fmt.Sprintf("pwm%d", channel)),
		channel:    channel,
		periodNS:   uint64(nanosecondsPerSecond / frequency),
		resolution: resolution,
	}

	if err := c.ensureExported(); err != nil {
		return nil, err
	}

	// disable before changing the period
	_ = c.writeBool("enable", false)
	if err := c.writeUint("duty_cycle", 0); err != nil {
		return nil, err
	}
	if err := c.writeUint("period", c.periodNS); err != nil {
		return nil, err
	}
	if err := c.writeBool("enable", true); err != nil {
		return nil, err
	}
	return c, nil
}

// DutyCycleNS converts a duty count to nanoseconds of high time per period
func (c *SysfsChannel) DutyCycleNS(duty uint32) uint64 {
	ns := uint64(duty) * c.periodNS >> uint(c.resolution)
	if ns > c.periodNS {
		return c.periodNS
	}
	return ns
}

func (c *SysfsChannel) Write(duty uint32) error {
	return c.writeUint("duty_cycle", c.DutyCycleNS(duty))
}

func (c *SysfsChannel) Close() error {
	_ = c.writeUint("duty_cycle", 0)
	return c.writeBool("enable", false)
}

func (c *SysfsChannel) ensureExported() error {
	if _, err := os.Stat(c.pwmPath); err == nil {
		return nil
	}
	exportPath := filepath.Join(c.chipPath, "export")
	if err := writeSysfs(exportPath, strconv.Itoa(c.channel)); err != nil {
		// If already exported by someone else, ignore.
		if _, statErr := os.Stat(c.pwmPath); statErr == nil {
			return nil
		}
		return fmt.Errorf("pwm: export %s: %w", exportPath, err)
	}

	// Wait briefly for sysfs node to appear.
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(c.pwmPath); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := os.Stat(c.pwmPath); err != nil {
		return fmt.Errorf("pwm: %s not created after export: %w", c.pwmPath, err)
	}
	return nil
}

func (c *SysfsChannel) writeUint(name string, v uint64) error {
	return writeSysfs(filepath.Join(c.pwmPath, name), strconv.FormatUint(v, 10))
}

func (c *SysfsChannel) writeBool(name string, v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	return writeSysfs(filepath.Join(c.pwmPath, name), val)
}

// writeSysfs retries for a short time, since udev may adjust permissions of
// freshly exported attributes asynchronously.
func writeSysfs(path string, value string) error {
	deadline := time.Now().Add(2 * time.Second)
	for {
		err := os.WriteFile(path, []byte(value), 0644)
		if err == nil {
			return nil
		}
		if time.Now().Before(deadline) && isRetryableSysfsErr(err) {
			time.Sleep(25 * time.Millisecond)
			continue
		}
		return err
	}
}

func isRetryableSysfsErr(err error) bool {
	return errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EBUSY)
}
