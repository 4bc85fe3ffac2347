package servo

import (
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
)

var immediate bool

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Return a servo to its neutral position, or cut its output with --immediate",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServo(servoId)
		if err != nil {
			return err
		}

		err = s.Stop(immediate)
		if err != nil {
			_ = s.Close()
			return err
		}

		if immediate {
			ui.Success("Servo %s output cut", s.GetId())
		} else {
			ui.Success("Servo %s at neutral position", s.GetId())
		}
		return s.Close()
	},
}

func init() {
	stopCmd.Flags().BoolVar(&immediate, "immediate", false, "Cut the PWM output instead of returning to neutral")
	Command.AddCommand(stopCmd)
}
