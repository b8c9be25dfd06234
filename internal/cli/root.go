package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"mizman/internal/config"
	"mizman/internal/database"
	"mizman/internal/services"
	"mizman/internal/storage"
	"mizman/internal/utils"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath string
	Engine string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the MizMan CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mizman",
		Short: "MizMan - spirit, body, mind and wealth tracker",
		Long:  "Track daily devotions, workouts, an abstinence streak and net worth from the terminal, Telegram or HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "store path (default from DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.Engine, "engine", "", "store engine: sqlite|json|memory (default from STORE_ENGINE)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSpiritCommand(opts))
	cmd.AddCommand(NewBodyCommand(opts))
	cmd.AddCommand(NewMarkersCommand(opts))
	cmd.AddCommand(NewStreakCommand(opts))
	cmd.AddCommand(NewAssetCommand(opts))
	cmd.AddCommand(NewNetWorthCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig applies the global flags over the loaded configuration.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	if o.Engine != "" {
		cfg.Database.Engine = o.Engine
	}
	return cfg, nil
}

// openManager opens the configured store for a one-shot command. The
// returned func closes the store.
func (o *RootOptions) openManager(ctx context.Context) (*services.ServiceManager, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	kv, err := storage.NewByEngine(cfg.Database.Engine, cfg.Database.Path, database.Open)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sm := services.NewServiceManager(kv, services.Options{Location: utils.LoadLocation(cfg.Timezone)})
	sm.Settings.Load(ctx)

	closeFn := func() {
		if c, ok := kv.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("⚠️ Close store: %v", err)
			}
		}
	}
	return sm, closeFn, nil
}
