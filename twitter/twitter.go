// Package twitter posts build outcomes as a Twitter status update.
package twitter

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/andyle182810/buildnotify/notifier"
	"github.com/andyle182810/buildnotify/validator"
	"github.com/rs/zerolog"
)

const (
	ServiceName = "Twitter"
	BaseURL     = "http://twitter.com/statuses/update.xml"

	MaxMessageLength = 140
)

// Responses translates the unsuccessful Twitter status codes.
var Responses = notifier.NewResponseTable(map[int]string{
	http.StatusNotModified:         "Status hasn't changed since last update",
	http.StatusBadRequest:          "Bad request - you may have exceeded the rate limit",
	http.StatusUnauthorized:        "Your username and password did not authenticate",
	http.StatusForbidden:           "Forbidden request - Twitter are refusing to honour the request",
	http.StatusNotFound:            "The Twitter URL is invalid",
	http.StatusInternalServerError: "There is a problem with the Twitter server",
	http.StatusBadGateway:          "Twitter is either down or being upgraded",
	http.StatusServiceUnavailable:  "Twitter servers are overloaded and refusing request",
})

var validate = validator.New()

type Config struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Message  string `json:"message"  validate:"required"`
	BaseURL  string `json:"baseUrl"  validate:"omitempty,url"`
}

func (c Config) Name() string {
	return ServiceName
}

func (c Config) SuccessCode() int {
	return http.StatusOK
}

func (c Config) Responses() notifier.ResponseTable {
	return Responses
}

func (c Config) FailurePrefix() string {
	return "Update unsuccessful"
}

func (c Config) Prepare(logger zerolog.Logger) (*notifier.Request, error) {
	c.Message = strings.TrimSpace(c.Message)

	if err := validate.Validate(c); err != nil {
		return nil, notifier.InvalidConfig(err)
	}

	status, truncated := StatusText(c.Message)
	if truncated {
		logger.Warn().
			Int("max_length", MaxMessageLength).
			Msg("Message is greater than the maximum message length - truncating...")
	}

	endpoint := c.BaseURL
	if endpoint == "" {
		endpoint = BaseURL
	}

	var query notifier.Query

	query.AddEncoded("status", url.QueryEscape(status))

	return &notifier.Request{
		Method:       http.MethodPost,
		URL:          endpoint,
		Query:        query,
		Body:         []byte{},
		Headers:      nil,
		Username:     c.Username,
		Password:     c.Password,
		Confirmation: fmt.Sprintf("Twitter status updated to: '%s'", status),
	}, nil
}

// StatusText normalizes message and cuts it to MaxMessageLength characters.
func StatusText(message string) (string, bool) {
	return notifier.Truncate(notifier.NormalizeMessage(message), MaxMessageLength)
}

var _ notifier.Service = Config{}
