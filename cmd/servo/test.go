package servo

import (
	"github.com/markusressel/servo2go/internal"
	"github.com/markusressel/servo2go/internal/configuration"
	"github.com/markusressel/servo2go/internal/persistence"
	"github.com/markusressel/servo2go/internal/sequence"
	"github.com/markusressel/servo2go/internal/ui"
	"github.com/spf13/cobra"
)

var sequenceName string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a diagnostic sequence (oscillate | sweep) on a servo",
	Long: `oscillate alternates between 60° and 120° for 30 seconds and finishes at 90°.
sweep steps from 0° to 180° and back in 10° steps, holding each for 500ms.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServo(servoId)
		if err != nil {
			return err
		}
		defer func() {
			_ = s.Close()
		}()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err := pers.Init(); err != nil {
			ui.Warning("Unable to initialize persistence, run will not be recorded: %v", err)
			pers = nil
		}

		r, err := internal.RunSequence(s, sequenceName, pers, sequence.NewSystemClock())
		if err != nil {
			return err
		}
		ui.Success("%s finished after %s with %d commands, servo at %d°", r.Sequence, r.Duration, r.Commands, r.FinalAngle)
		return nil
	},
}

func init() {
	testCmd.Flags().StringVarP(&sequenceName, "sequence", "s", configuration.SequenceOscillate, "Sequence to run (oscillate | sweep)")
	Command.AddCommand(testCmd)
}
