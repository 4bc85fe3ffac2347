package history

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/markusressel/servo2go/cmd/global"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/persistence"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var (
	servoId   string
	clearRuns bool
)

var Command = &cobra.Command{
	Use:   "history",
	Short: "Print the recorded diagnostic runs of a servo",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)

		if clearRuns {
			if err := pers.DeleteSequenceRuns(servoId); err != nil {
				return err
			}
			ui.Success("Cleared recorded runs of servo %s", servoId)
			return nil
		}

		runs, err := pers.LoadSequenceRuns(servoId)
		if errors.Is(err, os.ErrNotExist) {
			ui.Printfln("No recorded runs for servo %s yet...", servoId)
			return nil
		} else if err != nil {
			return err
		}

		var rows [][]string
		for _, r := range runs {
			rows = append(rows, []string{
				r.Start.Local().Format(time.DateTime),
				r.Sequence,
				r.Duration.String(),
				strconv.Itoa(r.Commands),
				strconv.Itoa(r.FinalAngle),
			})
		}

		ui.Printfln("%s", servoId)
		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Start", "Sequence", "Duration", "Commands", "Final angle (°)"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(&servoId, "id", "i", configuration.DefaultServoId, "Servo ID as specified in the config")
	Command.Flags().BoolVar(&clearRuns, "clear", false, "Delete the recorded runs instead of printing them")
}
