package main

import (
	"time"

	"github.com/andyle182810/buildnotify/httpclient"
	"github.com/andyle182810/buildnotify/logutil"
	"github.com/andyle182810/buildnotify/notifier"
	"github.com/spf13/cobra"
)

// maxResponseSize bounds how much of a service answer is read.
const maxResponseSize = 1 << 20

type commandContext struct {
	config    *Config
	configErr error

	logLevel string
	strict   bool
	timeout  time.Duration
}

func newCommandContext() *commandContext {
	cfg, err := loadConfig()
	if err != nil {
		cfg = &Config{LogLevel: "info", Timeout: httpclient.DefaultTimeout} //nolint:exhaustruct
	}

	return &commandContext{
		config:    cfg,
		configErr: err,
		logLevel:  cfg.LogLevel,
		strict:    cfg.Strict,
		timeout:   cfg.Timeout,
	}
}

func (c *commandContext) newNotifier(cmd *cobra.Command) *notifier.Notifier {
	logger := logutil.NewConsoleLogger(cmd.ErrOrStderr(), c.logLevel)
	client := httpclient.New("",
		httpclient.WithTimeout(c.timeout),
		httpclient.WithMaxResponseSize(maxResponseSize),
	)

	return notifier.New(client,
		notifier.WithLogger(logger),
		notifier.WithPolicy(notifier.PolicyFor(c.strict)),
	)
}

func (c *commandContext) notify(cmd *cobra.Command, svc notifier.Service) error {
	_, err := c.newNotifier(cmd).Execute(cmd.Context(), svc)

	return err
}

// intFlag returns nil unless the flag was given on the command line.
func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return &value
}
