package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/schemastore"
)

type commandContext struct {
	configFlag *string
	dbFlag     *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var dbFlag string

	ctx := &commandContext{configFlag: &configFlag, dbFlag: &dbFlag}

	rootCmd := &cobra.Command{
		Use:           "formstore",
		Short:         "Development schema endpoint backed by SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database file (overrides store.path)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newPruneCommand(ctx))

	return rootCmd
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if db := strings.TrimSpace(*c.dbFlag); db != "" {
			expanded, err := config.ExpandPath(db)
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Store.Path = expanded
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

// withStore opens the database for the duration of fn.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(context.Context, *schemastore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := schemastore.Open(ctx, cfg.Store.Path, schemastore.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Store.Path, err)
	}
	defer store.Close()
	return fn(ctx, store)
}
