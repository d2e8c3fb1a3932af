package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "secondaries",
		Short:         "Secondary-particle spectra from cached interpolation tables",
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

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.dataRootFlag, "data-root", "", "Directory holding spectrum tables and cached artifacts (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&ctx.jsonFlag, "json", false, "Write machine-readable JSON output")

	rootCmd.AddCommand(newEvalCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newKernelCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
