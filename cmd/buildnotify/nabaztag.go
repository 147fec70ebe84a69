package main

import (
	"github.com/andyle182810/buildnotify/nabaztag"
	"github.com/spf13/cobra"
)

type nabaztagOptions struct {
	serial            string
	token             string
	leftEar           int
	rightEar          int
	message           string
	messageID         int
	voice             string
	choreography      string
	choreographyTitle string
	urlList           string
	status            string
	baseURL           string
}

func newNabaztagCommand(ctx *commandContext) *cobra.Command {
	var opts nabaztagOptions

	cmd := &cobra.Command{
		Use:   "nabaztag",
		Short: "Send an event to a Nabaztag rabbit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := nabaztag.Config{
				SerialNumber:      opts.serial,
				Token:             opts.token,
				LeftEarPosition:   intFlag(cmd, "left-ear", opts.leftEar),
				RightEarPosition:  intFlag(cmd, "right-ear", opts.rightEar),
				Message:           opts.message,
				MessageID:         intFlag(cmd, "message-id", opts.messageID),
				Voice:             opts.voice,
				Choreography:      opts.choreography,
				ChoreographyTitle: opts.choreographyTitle,
				URLList:           opts.urlList,
				Status:            nabaztag.BuildStatus(opts.status),
				BaseURL:           opts.baseURL,
			}

			return ctx.notify(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.serial, "serial", ctx.config.NabaztagSerial, "Serial number of the rabbit")
	flags.StringVar(&opts.token, "token", ctx.config.NabaztagToken, "API token of the rabbit")
	flags.IntVar(&opts.leftEar, "left-ear", 0, "Left ear position (0-16)")
	flags.IntVar(&opts.rightEar, "right-ear", 0, "Right ear position (0-16)")
	flags.StringVar(&opts.message, "message", "", "Text to speak")
	flags.IntVar(&opts.messageID, "message-id", 0, "Id of a stored message to play")
	flags.StringVar(&opts.voice, "voice", "", "Voice used for text to speech")
	flags.StringVar(&opts.choreography, "choreography", "", "Choreography sequence")
	flags.StringVar(&opts.choreographyTitle, "choreography-title", "", "Choreography title")
	flags.StringVar(&opts.urlList, "url-list", "", "Pipe separated list of audio URLs to stream")
	flags.StringVar(&opts.status, "status", "", "Build status preset (success, failure, recovery)")
	flags.StringVar(&opts.baseURL, "base-url", ctx.config.NabaztagBaseURL, "Override the API endpoint")

	return cmd
}
