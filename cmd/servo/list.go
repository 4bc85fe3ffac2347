package servo

import (
	"fmt"
	"strconv"

	"github.com/markusressel/servo2go/cmd/global"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/servo"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/markusressel/servo2go/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured servos",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		configs := map[string]configuration.ServoConfig{}
		for _, config := range configuration.CurrentConfig.Servos {
			configs[config.ID] = config
		}

		var rows [][]string
		for _, id := range util.SortedKeys(configs) {
			config := configs[id]
			limit := servo.NewAngleLimit(config.AngleLimit)
			rows = append(rows, []string{
				id,
				backendName(config),
				strconv.Itoa(config.Pin),
				strconv.Itoa(config.Channel),
				fmt.Sprintf("%d Hz / %d bit", config.Frequency, config.Resolution),
				fmt.Sprintf("[%d, %d]", limit.Min, limit.Max),
				config.BootSequence,
			})
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"ID", "Backend", "Pin", "Channel", "PWM", "Limit", "Boot sequence"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func backendName(config configuration.ServoConfig) string {
	switch {
	case config.Memory != nil:
		return "memory"
	case config.File != nil:
		return "file: " + config.File.Path
	case config.Sysfs != nil:
		return fmt.Sprintf("sysfs: %s/pwmchip%d", config.Sysfs.Base, config.Sysfs.Chip)
	case config.Rpio != nil:
		return "rpio"
	case config.Pca9685 != nil:
		return fmt.Sprintf("pca9685: %s@0x%02x", config.Pca9685.Bus, config.Pca9685.Address)
	}
	return "unknown"
}

func init() {
	Command.AddCommand(listCmd)
}
