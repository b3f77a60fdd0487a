package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dpetit12345/classical-fixes/internal/record"
	"github.com/dpetit12345/classical-fixes/internal/tags"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(afero.NewOsFs(), tags.Files{})
}

// newRootCommandWith builds the command tree over the given filesystem and
// record accessor.
func newRootCommandWith(fs afero.Fs, access record.Accessor) *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var dryRunFlag bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &dryRunFlag, fs, access)

	rootCmd := &cobra.Command{
		Use:           "classicalfixes",
		Short:         "Normalize classical music tags",
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
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Show results without writing files")

	rootCmd.AddCommand(newCombineCommand(ctx))
	rootCmd.AddCommand(newFixCommand(ctx))
	rootCmd.AddCommand(newRenumberCommand(ctx))
	for _, cmd := range newAddCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newLookupCommand(ctx))

	return rootCmd
}
