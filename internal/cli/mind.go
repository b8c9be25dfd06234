package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mizman/internal/mind"
)

// NewStreakCommand creates the streak command.
func NewStreakCommand(rootOpts *RootOptions) *cobra.Command {
	var reset, yes bool

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the abstinence streak, or reset it",
		Long: `Show the current and longest streak.

--reset starts the streak over and needs --yes to go through. The longest
streak is never lowered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view := sm.Mind.Streak(cmd.Context())
			if reset {
				confirmation := mind.NotConfirmed
				if yes {
					confirmation = mind.Confirmed
				}
				if view, err = sm.Mind.Reset(cmd.Context(), confirmation); err != nil {
					return fmt.Errorf("%w: pass --yes", err)
				}
			}

			text := fmt.Sprintf("current %d days, longest %d days", view.Current, view.Longest)
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(view, text)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "reset the streak")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
