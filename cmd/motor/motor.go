package motor

import (
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/motor"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
)

const defaultDuration = 1 * time.Second

var duration time.Duration

var Command = &cobra.Command{
	Use:   "motor <F|B|L|R|S>",
	Short: "Drive the motors in the given direction",
	Long: `Directions: F (forward), B (backward), L (turn left), R (turn right), S (stop).
The motors are stopped again after --duration (default 1s). A duration of 0
returns at once, which is only possible with the memory backend since the
gpio lines are released when the process exits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		direction, err := motor.ParseDirection(args[0])
		if err != nil {
			return err
		}

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.Fatal("%v", err)
		}

		config := configuration.CurrentConfig.Motor
		if config == nil {
			return errors.New("no motor configured")
		}

		if err := checkDuration(*config, duration); err != nil {
			return err
		}

		m, err := motor.NewDriver(*config)
		if err != nil {
			return err
		}

		if err := m.Drive(direction); err != nil {
			_ = m.Close()
			return err
		}
		ui.Success("Motors: %s", direction)

		if duration > 0 {
			time.Sleep(duration)
			return m.Close()
		}
		return nil
	},
}

func checkDuration(config configuration.MotorConfig, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must not be negative, was %s", d)
	}
	if d == 0 && config.Gpio != nil {
		return errors.New("the gpio backend needs a positive --duration, its lines are released on exit")
	}
	return nil
}

func init() {
	Command.Flags().DurationVarP(&duration, "duration", "d", defaultDuration, "Stop the motors after this duration (e.g. 2s)")
}
