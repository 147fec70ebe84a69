package main

import (
	"github.com/andyle182810/buildnotify/twitter"
	"github.com/spf13/cobra"
)

func newTwitterCommand(ctx *commandContext) *cobra.Command {
	var cfg twitter.Config

	cmd := &cobra.Command{
		Use:   "twitter",
		Short: "Post a status update to Twitter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.notify(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Username, "username", ctx.config.TwitterUsername, "Twitter username")
	flags.StringVar(&cfg.Password, "password", ctx.config.TwitterPassword, "Twitter password")
	flags.StringVar(&cfg.Message, "message", "", "Status text, truncated to 140 characters")
	flags.StringVar(&cfg.BaseURL, "base-url", ctx.config.TwitterBaseURL, "Override the API endpoint")

	return cmd
}
