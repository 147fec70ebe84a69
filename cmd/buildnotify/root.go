package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "buildnotify",
		Short:         "Report build outcomes to Nabaztag, Twitter and Unfuddle",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return ctx.configErr
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.logLevel, "log-level", ctx.config.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.BoolVar(&ctx.strict, "strict", ctx.config.Strict, "Fail when the service reports an unsuccessful response")
	flags.DurationVar(&ctx.timeout, "timeout", ctx.config.Timeout, "HTTP request timeout")

	rootCmd.AddCommand(newNabaztagCommand(ctx))
	rootCmd.AddCommand(newTwitterCommand(ctx))
	rootCmd.AddCommand(newUnfuddleCommand(ctx))

	return rootCmd
}
