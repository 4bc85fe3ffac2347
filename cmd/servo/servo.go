package servo

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/servo"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
)

var servoId string

var Command = &cobra.Command{
	Use:              "servo",
	Short:            "Servo related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&servoId,
		"id", "i",
		configuration.DefaultServoId,
		"Servo ID as specified in the config",
	)
}

func loadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate()
	if err != nil {
		ui.Fatal("%v", err)
	}
}

func getServoConfig(id string) (configuration.ServoConfig, error) {
	loadConfig()

	for _, config := range configuration.CurrentConfig.Servos {
		if config.ID == id {
			return config, nil
		}
	}
	return configuration.ServoConfig{}, fmt.Errorf("no servo with id found: %s", id)
}

// openServo configures the PWM backend of the servo with the given id.
// The caller must Close it.
func openServo(id string) (*servo.Servo, error) {
	config, err := getServoConfig(id)
	if err != nil {
		return nil, err
	}
	return servo.Open(config)
}
