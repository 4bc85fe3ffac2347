package servo

import (
	"fmt"
	"strconv"

	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <angle>",
	Short: "Move a servo to the given angle in degrees",
	Long:  `The angle is clamped to the angle limit of the servo ([0..180] unless configured otherwise).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid angle '%s'", args[0])
		}

		s, err := openServo(servoId)
		if err != nil {
			return err
		}
		defer func() {
			_ = s.Close()
		}()

		if err := s.SetAngle(angle); err != nil {
			return err
		}
		ui.Success("Servo %s at %d° (duty %d)", s.GetId(), s.GetAngle(), s.GetDuty())
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
