package config

import (
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "config",
	Short: "Configuration related commands",
	Long:  ``,
}

// loadConfig reads and decodes the configuration file selected via the root command (-c)
func loadConfig() string {
	configPath := configuration.DetectAndReadConfigFile()
	configuration.LoadConfig()
	return configPath
}
