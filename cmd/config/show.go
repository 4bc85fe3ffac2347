package config

import (
	"fmt"

	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration, including defaults",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := loadConfig()
		ui.Debug("Using configuration file at: %s", configPath)

		out, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			return fmt.Errorf("unable to render configuration: %w", err)
		}
		ui.Printf("%s", string(out))
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
