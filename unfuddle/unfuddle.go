// Package unfuddle posts build outcomes as messages on an Unfuddle project.
//
// See http://unfuddle.com/docs/api/data_models#message for the message
// document accepted by the API.
package unfuddle

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andyle182810/buildnotify/httpclient"
	"github.com/andyle182810/buildnotify/notifier"
	"github.com/andyle182810/buildnotify/validator"
	"github.com/rs/zerolog"
)

const (
	ServiceName = "Unfuddle"
	Host        = "unfuddle.com"
)

var ErrInvalidCategoryID = errors.New("unfuddle: invalid category id")

var Responses = notifier.NewResponseTable(map[int]string{
	http.StatusBadRequest:          "Bad request - you may have exceeded the rate limit",
	http.StatusUnauthorized:        "Your username and password did not authenticate",
	http.StatusNotFound:            "The Unfuddle URL is invalid",
	http.StatusMethodNotAllowed:    "The specified HTTP verb is not allowed",
	http.StatusInternalServerError: "There is a problem with the Unfuddle server",
	http.StatusBadGateway:          "Unfuddle is either down or being upgraded",
	http.StatusServiceUnavailable:  "Unfuddle servers are overloaded and refusing request",
})

var validate = validator.New()

type Config struct {
	Subdomain   string `json:"subdomain"   validate:"required,hostname_rfc1123"`
	ProjectID   int    `json:"projectId"   validate:"gt=0"`
	Username    string `json:"username"    validate:"required"`
	Password    string `json:"password"    validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Body        string `json:"body"`
	CategoryIDs []int  `json:"categoryIds"`
	// BaseURL replaces https://<subdomain>.unfuddle.com, mostly for tests.
	BaseURL string `json:"baseUrl" validate:"omitempty,url"`
}

func (c Config) Name() string {
	return ServiceName
}

func (c Config) SuccessCode() int {
	return http.StatusCreated
}

func (c Config) Responses() notifier.ResponseTable {
	return Responses
}

func (c Config) FailurePrefix() string {
	return "New Unfuddle message unsuccessful"
}

// URL returns the message collection of the configured project.
func (c Config) URL() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", c.Subdomain, Host)
	}

	return fmt.Sprintf("%s/api/v1/projects/%d/messages", strings.TrimSuffix(base, "/"), c.ProjectID)
}

func (c Config) Prepare(_ zerolog.Logger) (*notifier.Request, error) {
	if err := validate.Validate(c); err != nil {
		return nil, notifier.InvalidConfig(err)
	}

	body, err := c.MessageXML()
	if err != nil {
		return nil, err
	}

	return &notifier.Request{
		Method: http.MethodPost,
		URL:    c.URL(),
		Query:  notifier.Query{},
		Body:   body,
		Headers: map[string]string{
			httpclient.HeaderAccept:      httpclient.ContentTypeXML,
			httpclient.HeaderContentType: httpclient.ContentTypeXML,
		},
		Username:     c.Username,
		Password:     c.Password,
		Confirmation: fmt.Sprintf("New Unfuddle message posted: '%s'", c.Title),
	}, nil
}

type messageDocument struct {
	XMLName    xml.Name            `xml:"message"`
	Title      string              `xml:"title"`
	Body       string              `xml:"body"`
	Categories *categoriesDocument `xml:"categories,omitempty"`
}

type categoriesDocument struct {
	Categories []categoryDocument `xml:"category"`
}

type categoryDocument struct {
	ID int `xml:"id,attr"`
}

// MessageXML renders the message document posted to the API.
func (c Config) MessageXML() ([]byte, error) {
	doc := messageDocument{
		XMLName:    xml.Name{Space: "", Local: "message"},
		Title:      c.Title,
		Body:       c.Body,
		Categories: nil,
	}

	if len(c.CategoryIDs) > 0 {
		doc.Categories = &categoriesDocument{
			Categories: make([]categoryDocument, 0, len(c.CategoryIDs)),
		}

		for _, id := range c.CategoryIDs {
			doc.Categories.Categories = append(doc.Categories.Categories, categoryDocument{ID: id})
		}
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode unfuddle message: %w", err)
	}

	return out, nil
}

// ParseCategoryIDs reads a comma separated list of category ids. Blank
// entries are skipped.
func ParseCategoryIDs(list string) ([]int, error) {
	var ids []int

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategoryID, part)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

var _ notifier.Service = Config{}
