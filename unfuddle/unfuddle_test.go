package unfuddle_test

import (
	"encoding/xml"
	"net/http"
	"testing"

	"github.com/andyle182810/buildnotify/httpclient"
	"github.com/andyle182810/buildnotify/notifier"
	"github.com/andyle182810/buildnotify/testutil"
	"github.com/andyle182810/buildnotify/unfuddle"
	"github.com/andyle182810/buildnotify/validator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postedMessage struct {
	XMLName    xml.Name `xml:"message"`
	Title      string   `xml:"title"`
	Body       string   `xml:"body"`
	Categories []struct {
		ID int `xml:"id,attr"`
	} `xml:"categories>category"`
}

func newConfig(baseURL string) unfuddle.Config {
	return unfuddle.Config{
		Subdomain:   "acme",
		ProjectID:   12,
		Username:    "builder",
		Password:    "s3cret",
		Title:       "Build 42 passed",
		Body:        "All 311 tests green",
		CategoryIDs: nil,
		BaseURL:     baseURL,
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://acme.unfuddle.com/api/v1/projects/12/messages", newConfig("").URL())
	require.Equal(t, "http://127.0.0.1:8080/api/v1/projects/12/messages",
		newConfig("http://127.0.0.1:8080/").URL())
}

func TestMessageXML_WithoutCategories(t *testing.T) {
	t.Parallel()

	out, err := newConfig("").MessageXML()
	require.NoError(t, err)

	require.Equal(t,
		"<message><title>Build 42 passed</title><body>All 311 tests green</body></message>",
		string(out))
}

func TestMessageXML_CategoriesKeepOrder(t *testing.T) {
	t.Parallel()

	cfg := newConfig("")
	cfg.CategoryIDs = []int{5, 9}

	out, err := cfg.MessageXML()
	require.NoError(t, err)

	require.Contains(t, string(out),
		`<categories><category id="5"></category><category id="9"></category></categories>`)

	var msg postedMessage
	require.NoError(t, xml.Unmarshal(out, &msg))
	require.Len(t, msg.Categories, 2)
	assert.Equal(t, 5, msg.Categories[0].ID)
	assert.Equal(t, 9, msg.Categories[1].ID)
}

func TestMessageXML_EscapesMarkup(t *testing.T) {
	t.Parallel()

	cfg := newConfig("")
	cfg.Title = "<b>broken</b> & failing"

	out, err := cfg.MessageXML()
	require.NoError(t, err)

	var msg postedMessage
	require.NoError(t, xml.Unmarshal(out, &msg))
	require.Equal(t, "<b>broken</b> & failing", msg.Title)
}

func TestPrepare_Request(t *testing.T) {
	t.Parallel()

	req, err := newConfig("").Prepare(zerolog.Nop())

	require.NoError(t, err)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "https://acme.unfuddle.com/api/v1/projects/12/messages", req.URL)
	require.Zero(t, req.Query.Len())
	require.Equal(t, httpclient.ContentTypeXML, req.Headers[httpclient.HeaderAccept])
	require.Equal(t, httpclient.ContentTypeXML, req.Headers[httpclient.HeaderContentType])
	require.Equal(t, "builder", req.Username)
	require.Equal(t, "New Unfuddle message posted: 'Build 42 passed'", req.Confirmation)
}

func TestPrepare_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*unfuddle.Config)
		field  string
	}{
		{name: "missing subdomain", mutate: func(c *unfuddle.Config) { c.Subdomain = "" }, field: "subdomain"},
		{name: "bad subdomain", mutate: func(c *unfuddle.Config) { c.Subdomain = "not a host" }, field: "subdomain"},
		{name: "missing project", mutate: func(c *unfuddle.Config) { c.ProjectID = 0 }, field: "projectId"},
		{name: "missing username", mutate: func(c *unfuddle.Config) { c.Username = "" }, field: "username"},
		{name: "missing password", mutate: func(c *unfuddle.Config) { c.Password = "" }, field: "password"},
		{name: "missing title", mutate: func(c *unfuddle.Config) { c.Title = "" }, field: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig("")
			tt.mutate(&cfg)

			_, err := cfg.Prepare(zerolog.Nop())

			require.ErrorIs(t, err, notifier.ErrInvalidConfig)

			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)

			_, ok := validationErrs.Field(tt.field)
			require.True(t, ok)
		})
	}
}

func TestParseCategoryIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []int
		wantErr  bool
	}{
		{name: "empty", input: "", expected: nil, wantErr: false},
		{name: "single", input: "5", expected: []int{5}, wantErr: false},
		{name: "spaces and blanks", input: " 5, ,9 ,", expected: []int{5, 9}, wantErr: false},
		{name: "not a number", input: "5,abc", expected: nil, wantErr: true},
		{name: "zero", input: "0", expected: nil, wantErr: true},
		{name: "negative", input: "-3", expected: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids, err := unfuddle.ParseCategoryIDs(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, unfuddle.ErrInvalidCategoryID)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, ids)
		})
	}
}

func TestExecute_PostsMessage(t *testing.T) {
	t.Parallel()

	server := testutil.NewRecordingServer(t, http.StatusCreated, "")
	logger, logs := testutil.NewLogger()

	cfg := newConfig(server.URL)
	cfg.CategoryIDs = []int{5, 9}

	n := notifier.New(httpclient.New(""),
		notifier.WithLogger(logger),
		notifier.WithPolicy(notifier.PolicyStrict))

	outcome, err := n.Execute(t.Context(), cfg)

	require.NoError(t, err)
	require.True(t, outcome.Success)
	require.Contains(t, logs.String(), "New Unfuddle message posted: 'Build 42 passed'")

	req := server.LastRequest(t)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/api/v1/projects/12/messages", req.Path)
	require.Equal(t, httpclient.ContentTypeXML, req.Header.Get("Accept"))
	require.Equal(t, httpclient.ContentTypeXML, req.Header.Get("Content-Type"))
	require.Empty(t, req.Header.Get("Expect"))
	require.Equal(t, "builder", req.Username)
	require.Equal(t, "s3cret", req.Password)

	var msg postedMessage
	require.NoError(t, xml.Unmarshal(req.Body, &msg))
	require.Equal(t, "Build 42 passed", msg.Title)
	require.Len(t, msg.Categories, 2)
}

func TestExecute_OKIsNotCreated(t *testing.T) {
	t.Parallel()

	server := testutil.NewRecordingServer(t, http.StatusOK, "")
	logger, logs := testutil.NewLogger()

	n := notifier.New(httpclient.New(""), notifier.WithLogger(logger))

	outcome, err := n.Execute(t.Context(), newConfig(server.URL))

	require.NoError(t, err)
	require.False(t, outcome.Success)
	require.Contains(t, logs.String(),
		"New Unfuddle message unsuccessful: Unrecognised HTTP response code '200' from Unfuddle")
}

func TestExecute_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	server := testutil.NewRecordingServer(t, http.StatusMethodNotAllowed, "")

	n := notifier.New(httpclient.New(""),
		notifier.WithLogger(zerolog.Nop()),
		notifier.WithPolicy(notifier.PolicyStrict))

	_, err := n.Execute(t.Context(), newConfig(server.URL))

	remoteErr, ok := notifier.IsRemoteError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusMethodNotAllowed, remoteErr.StatusCode)
	require.Equal(t, "The specified HTTP verb is not allowed", remoteErr.Description)
}

func TestExecute_ServiceUnavailable(t *testing.T) {
	t.Parallel()

	server := testutil.NewRecordingServer(t, http.StatusServiceUnavailable, "")
	logger, logs := testutil.NewLogger()

	n := notifier.New(httpclient.New(""), notifier.WithLogger(logger))

	outcome, err := n.Execute(t.Context(), newConfig(server.URL))

	require.NoError(t, err)
	require.False(t, outcome.Success)
	require.True(t, outcome.Known)
	require.Contains(t, logs.String(), `"level":"warn"`)
	require.Contains(t, logs.String(),
		"New Unfuddle message unsuccessful: Unfuddle servers are overloaded and refusing request")
}

func TestResponses_CoverCommonFailures(t *testing.T) {
	t.Parallel()

	for _, code := range []int{400, 401, 404, 405, 500, 502, 503} {
		_, ok := unfuddle.Responses.Describe(code)
		assert.True(t, ok, "code %d", code)
	}

	require.Equal(t, 7, unfuddle.Responses.Len())
}
