// Package nabaztag reports build outcomes to a Nabaztag rabbit through the
// query-string API described at http://doc.nabaztag.com/api/home.html.
package nabaztag

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andyle182810/buildnotify/notifier"
	"github.com/andyle182810/buildnotify/validator"
	"github.com/rs/zerolog"
)

const (
	ServiceName = "Nabaztag"
	BaseURL     = "http://api.nabaztag.com/vl/FR/api.jsp"

	MinEarPosition = 0
	MaxEarPosition = 16
)

var Responses = notifier.NewResponseTable(map[int]string{
	http.StatusNotModified:         "The Nabaztag has already received this event",
	http.StatusBadRequest:          "Bad request - check the parameters sent to the Nabaztag API",
	http.StatusUnauthorized:        "Your serial number and token did not authenticate",
	http.StatusForbidden:           "Forbidden request - Nabaztag are refusing to honour the request",
	http.StatusNotFound:            "The Nabaztag URL is invalid",
	http.StatusInternalServerError: "There is a problem with the Nabaztag server",
	http.StatusBadGateway:          "Nabaztag is either down or being upgraded",
	http.StatusServiceUnavailable:  "Nabaztag servers are overloaded and refusing request",
})

var validate = validator.New()

// Config holds everything needed for one Nabaztag event. Optional numeric
// fields are pointers so that "unset" differs from zero; optional text is
// unset when empty.
type Config struct {
	SerialNumber      string `json:"serialNumber"      validate:"required"`
	Token             string `json:"token"             validate:"required"`
	LeftEarPosition   *int   `json:"leftEarPosition"   validate:"omitnil,between=0 16"`
	RightEarPosition  *int   `json:"rightEarPosition"  validate:"omitnil,between=0 16"`
	Message           string `json:"message"`
	MessageID         *int   `json:"messageId"`
	Voice             string `json:"voice"`
	Choreography      string `json:"choreography"`
	ChoreographyTitle string `json:"choreographyTitle"`
	URLList           string `json:"urlList"`
	// Status replaces Message with a canned build status message.
	Status BuildStatus `json:"status" validate:"omitempty,oneof=success failure recovery"`
	// BaseURL overrides the API endpoint.
	BaseURL string `json:"baseUrl" validate:"omitempty,url"`
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
	if err := validate.Validate(c); err != nil {
		return nil, notifier.InvalidConfig(err)
	}

	message := strings.TrimSpace(c.Message)

	if c.Status != "" {
		statusMessage, err := c.Status.Message()
		if err != nil {
			return nil, notifier.InvalidConfig(err)
		}

		message = statusMessage
	}

	if c.LeftEarPosition != nil {
		logger.Debug().Int("position", *c.LeftEarPosition).Msg("Setting left ear position")
	}

	if c.RightEarPosition != nil {
		logger.Debug().Int("position", *c.RightEarPosition).Msg("Setting right ear position")
	}

	endpoint := c.BaseURL
	if endpoint == "" {
		endpoint = BaseURL
	}

	confirmation := "Nabaztag event sent"
	if message != "" {
		confirmation = fmt.Sprintf("Nabaztag event sent: '%s'", notifier.NormalizeMessage(message))
	}

	return &notifier.Request{
		Method:       http.MethodGet,
		URL:          endpoint,
		Query:        c.query(message),
		Body:         nil,
		Headers:      nil,
		Username:     "",
		Password:     "",
		Confirmation: confirmation,
	}, nil
}

func (c Config) query(message string) notifier.Query {
	var query notifier.Query

	query.Add("sn", c.SerialNumber)
	query.Add("token", c.Token)

	if c.LeftEarPosition != nil || c.RightEarPosition != nil {
		query.Add("ears", "ok")

		if c.LeftEarPosition != nil {
			query.Add("posleft", strconv.Itoa(*c.LeftEarPosition))
		}

		if c.RightEarPosition != nil {
			query.Add("posright", strconv.Itoa(*c.RightEarPosition))
		}
	}

	if message != "" {
		query.AddEncoded("tts", notifier.EncodeMessage(message))
	}

	if c.MessageID != nil {
		query.Add("idmessage", strconv.Itoa(*c.MessageID))
	}

	if voice := strings.TrimSpace(c.Voice); voice != "" {
		query.Add("voice", voice)
	}

	if c.Choreography != "" {
		query.Add("chor", c.Choreography)
	}

	if c.ChoreographyTitle != "" {
		query.Add("chortitle", c.ChoreographyTitle)
	}

	if c.URLList != "" {
		query.Add("urlList", c.URLList)
	}

	return query
}

type apiResponse struct {
	Message string `xml:"message"`
	Comment string `xml:"comment"`
}

// InspectBody logs the message/comment pair the API answers with.
func (c Config) InspectBody(logger zerolog.Logger, body []byte) {
	var resp apiResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		logger.Debug().Err(err).Msg("Ignoring unparseable Nabaztag response")

		return
	}

	if resp.Message == "" {
		return
	}

	logger.Info().Msgf("Nabaztag response: %s: %s", resp.Message, resp.Comment)
}

var (
	_ notifier.Service       = Config{}
	_ notifier.BodyInspector = Config{}
)
