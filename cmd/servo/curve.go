package servo

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/servo2go/cmd/global"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/servo"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/markusressel/servo2go/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var curveStep int

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the angle to duty mapping of a servo to console",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if curveStep <= 0 {
			return fmt.Errorf("step must be positive, was %d", curveStep)
		}

		config, err := getServoConfig(servoId)
		if err != nil {
			return err
		}
		return printCurve(config, curveStep)
	},
}

// printCurve prints the settings of a servo, its angle to duty table in the
// given angle steps and a plot of that table.
func printCurve(config configuration.ServoConfig, step int) error {
	s := servo.NewServo(config, nil)
	limit := s.GetAngleLimit()

	ui.Printfln("%s", s.GetId())
	tab := table.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Pin", strconv.Itoa(config.Pin)},
			{"Channel", strconv.Itoa(config.Channel)},
			{"Frequency", fmt.Sprintf("%d Hz", config.Frequency)},
			{"Resolution", fmt.Sprintf("%d bit", config.Resolution)},
			{"Duty formula", string(config.DutyFormula)},
			{"Angle limit", fmt.Sprintf("[%d, %d]", limit.Min, limit.Max)},
			{"Max duty", strconv.Itoa(int(s.GetMaxDuty()))},
		},
	}
	tableString, err := global.RenderTable(tab)
	if err != nil {
		return err
	}
	ui.Printfln("%s", tableString)

	var values []float64
	var rows [][]string
	for angle := limit.Min; angle <= limit.Max; angle += step {
		duty := s.DutyForAngle(angle)
		values = append(values, float64(duty))
		rows = append(rows, []string{
			strconv.Itoa(angle),
			strconv.Itoa(servo.PulseWidth(angle)),
			strconv.Itoa(int(duty)),
			fmt.Sprintf("%.2f%%", util.Ratio(float64(duty), 0, float64(s.GetMaxDuty()))*100),
		})
	}

	tableString, err = global.RenderTable(table.Table{
		Headers: []string{"Angle (°)", "Pulse (µs)", "Duty", "Duty %"},
		Rows:    rows,
	})
	if err != nil {
		return err
	}
	ui.Printfln("%s", tableString)

	caption := fmt.Sprintf("Duty / Angle (%d° steps)", step)
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln("%s", graph)
	return nil
}

func init() {
	curveCmd.Flags().IntVar(&curveStep, "step", 10, "Angle step in degrees")
	Command.AddCommand(curveCmd)
}
