package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/servo2go/cmd/config"
	"github.com/markusressel/servo2go/cmd/global"
	"github.com/markusressel/servo2go/cmd/history"
	"github.com/markusressel/servo2go/cmd/motor"
	"github.com/markusressel/servo2go/cmd/servo"
	"github.com/markusressel/servo2go/internal"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "servo2go",
	Short: "A daemon to drive the steering servo of an RC car.",
	Long: `servo2go drives the steering servo (and optionally the drive motors)
of an RC car. It runs the configured boot diagnostics and then serves
a small REST API for angle and motor commands.`,
	// this is the default command to run when no subcommand is specified
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupUi()
	},
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		err := configuration.Validate()
		if err != nil {
			ui.Error("Config Validation Error: %v", err)
			os.Exit(1)
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/servo2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(servo.Command)
	rootCmd.AddCommand(motor.Command)
	rootCmd.AddCommand(history.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("servo", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("servo2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
