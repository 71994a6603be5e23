package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var endpointFlag string

	ctx := newCommandContext(&configFlag, &endpointFlag)

	rootCmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build form schemas for a remote endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "Schema endpoint URL (overrides remote.endpoint)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newEditCommand(ctx))
	rootCmd.AddCommand(newFillCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newPullCommand(ctx))
	rootCmd.AddCommand(newPushCommand(ctx))
	rootCmd.AddCommand(newPreviewCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newLintCommand(ctx))
	rootCmd.AddCommand(newPaletteCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
