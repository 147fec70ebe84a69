package main

import (
	"fmt"

	"github.com/andyle182810/buildnotify/notifier"
	"github.com/andyle182810/buildnotify/unfuddle"
	"github.com/spf13/cobra"
)

func newUnfuddleCommand(ctx *commandContext) *cobra.Command {
	var (
		cfg        unfuddle.Config
		categories string
	)

	cmd := &cobra.Command{
		Use:   "unfuddle",
		Short: "Post a message to an Unfuddle project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := unfuddle.ParseCategoryIDs(categories)
			if err != nil {
				return notifier.InvalidConfig(fmt.Errorf("--categories: %w", err))
			}

			cfg.CategoryIDs = ids

			return ctx.notify(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Subdomain, "subdomain", ctx.config.UnfuddleSubdomain, "Account subdomain")
	flags.IntVar(&cfg.ProjectID, "project-id", ctx.config.UnfuddleProjectID, "Project id")
	flags.StringVar(&cfg.Username, "username", ctx.config.UnfuddleUsername, "Unfuddle username")
	flags.StringVar(&cfg.Password, "password", ctx.config.UnfuddlePassword, "Unfuddle password")
	flags.StringVar(&cfg.Title, "title", "", "Message title")
	flags.StringVar(&cfg.Body, "body", "", "Message body")
	flags.StringVar(&categories, "categories", "", "Comma separated category ids")
	flags.StringVar(&cfg.BaseURL, "base-url", ctx.config.UnfuddleBaseURL, "Override https://<subdomain>.unfuddle.com")

	return cmd
}
