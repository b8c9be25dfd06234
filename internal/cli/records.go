package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mizman/internal/calendar"
	"mizman/internal/spirit"
	"mizman/internal/utils"
)

// NewSpiritCommand creates the spirit command group.
func NewSpiritCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spirit",
		Short: "Devotional checklist",
	}
	cmd.AddCommand(newSpiritMarkCommand(rootOpts))
	return cmd
}

func newSpiritMarkCommand(rootOpts *RootOptions) *cobra.Command {
	var tradition string

	cmd := &cobra.Command{
		Use:   "mark <YYYY-MM-DD> [activity...]",
		Short: "Replace a day's checklist with the given activities",
		Long: `Replace a day's checklist. Activities not named are marked not done,
so "mark 2024-01-01" with no activities clears the day.

Quote activities with spaces: mark 2024-01-01 "Morning Prayer" Meditation`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			t := sm.Settings.Current().Tradition
			if tradition != "" {
				if t, err = spirit.ParseTradition(tradition); err != nil {
					return err
				}
			}
			rec, err := spirit.NewRecord(t, args[1:]...)
			if err != nil {
				return err
			}

			date := args[0]
			markers, err := sm.Spirit.Save(cmd.Context(), date, rec)
			if err != nil {
				return err
			}

			done, total := rec.Count()
			text := fmt.Sprintf("%s %s (%s): %d/%d", utils.GetMarkerEmoji(markers[date]), date, rec.Tradition, done, total)
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(rec, text)
		},
	}

	cmd.Flags().StringVarP(&tradition, "tradition", "t", "", "tradition (default: preferred)")
	return cmd
}

// NewBodyCommand creates the body command group.
func NewBodyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "body",
		Short: "Workout log",
	}
	cmd.AddCommand(newBodyMarkCommand(rootOpts))
	return cmd
}

func newBodyMarkCommand(rootOpts *RootOptions) *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "mark <YYYY-MM-DD>",
		Short: "Record whether a workout was done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			date := args[0]
			if _, err := sm.Body.Save(cmd.Context(), date, done); err != nil {
				return err
			}
			text := fmt.Sprintf("%s workout %s", date, utils.Check(done))
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(map[string]any{"date": date, "workoutDone": done}, text)
		},
	}

	cmd.Flags().BoolVar(&done, "done", true, "workout done")
	return cmd
}

// NewMarkersCommand creates the markers command.
func NewMarkersCommand(rootOpts *RootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:       "markers <spirit|body>",
		Short:     "Show calendar markers",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"spirit", "body"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" && !utils.ValidMonth(month) {
				return fmt.Errorf("invalid month %q: want YYYY-MM", month)
			}

			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var markers map[string]calendar.Marker
			switch strings.ToLower(args[0]) {
			case "spirit":
				markers = sm.Spirit.Markers(cmd.Context())
			case "body":
				markers = sm.Body.Markers(cmd.Context())
			default:
				return fmt.Errorf("unknown pillar %q: want spirit or body", args[0])
			}
			if month != "" {
				markers = calendar.Month(markers, month)
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(markers, formatMarkers(markers))
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "only this month (YYYY-MM)")
	return cmd
}

func formatMarkers(markers map[string]calendar.Marker) string {
	if len(markers) == 0 {
		return "no markers"
	}
	dates := make([]string, 0, len(markers))
	for date := range markers {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var b strings.Builder
	for i, date := range dates {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s", date, utils.GetMarkerEmoji(markers[date]), markers[date])
	}
	return b.String()
}
