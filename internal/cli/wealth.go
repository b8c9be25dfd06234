package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"mizman/internal/wealth"
)

// NewAssetCommand creates the asset command group.
func NewAssetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage assets",
	}
	cmd.AddCommand(newAssetAddCommand(rootOpts))
	cmd.AddCommand(newAssetRemoveCommand(rootOpts))
	cmd.AddCommand(newAssetListCommand(rootOpts))
	return cmd
}

func newAssetAddCommand(rootOpts *RootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add an asset, or replace the one with --id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := wealth.ParseCategory(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			saved, err := sm.Wealth.SaveAsset(cmd.Context(), wealth.Asset{ID: id, Category: category, Amount: amount})
			if err != nil {
				return err
			}
			symbol := sm.Settings.Current().CurrencySymbol()
			text := fmt.Sprintf("%s  %s  %s", saved.ID, saved.Category.Label(), wealth.Format(saved.Amount, symbol))
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(saved, text)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "asset id (default: generated)")
	return cmd
}

func newAssetRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			_, removed := sm.Wealth.DeleteAsset(cmd.Context(), args[0])
			text := "removed " + args[0]
			if !removed {
				text = "no asset " + args[0]
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(map[string]bool{"removed": removed}, text)
		},
	}
}

func newAssetListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			assets := sm.Wealth.Assets(cmd.Context())
			symbol := sm.Settings.Current().CurrencySymbol()
			lines := make([]string, 0, len(assets))
			for _, a := range assets {
				lines = append(lines, fmt.Sprintf("%s  %s  %s", a.ID, a.Category.Label(), wealth.Format(a.Amount, symbol)))
			}
			if len(lines) == 0 {
				lines = append(lines, "no assets")
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(assets, strings.Join(lines, "\n"))
		},
	}
}

// NewNetWorthCommand creates the networth command.
func NewNetWorthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Show net worth, breakdown and conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeFn, err := rootOpts.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			summary, err := sm.Wealth.Summary(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "net worth %s", summary.Formatted)
			for _, c := range summary.ByCategory {
				fmt.Fprintf(&b, "\n  %-20s %s (%s%%)", c.Label, c.Formatted, c.Share.Mul(decimal.NewFromInt(100)).StringFixed(1))
			}
			for _, c := range summary.Conversions {
				fmt.Fprintf(&b, "\n  = %s %s", c.Code, c.Formatted)
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(summary, b.String())
		},
	}
}
