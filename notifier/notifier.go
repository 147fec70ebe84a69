package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/andyle182810/buildnotify/httpclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service describes one remote endpoint a build outcome can be reported to.
type Service interface {
	Name() string
	// Prepare validates the configuration and builds the request. It must
	// not perform any I/O.
	Prepare(logger zerolog.Logger) (*Request, error)
	SuccessCode() int
	Responses() ResponseTable
	// FailurePrefix heads the warning logged for lenient failures.
	FailurePrefix() string
}

// BodyInspector is implemented by services that want to look at the
// response body. It is informational only.
type BodyInspector interface {
	InspectBody(logger zerolog.Logger, body []byte)
}

type Request struct {
	Method       string
	URL          string
	Query        Query
	Body         []byte
	Headers      map[string]string
	Username     string
	Password     string
	Confirmation string
}

type Notifier struct {
	client *httpclient.Client
	logger zerolog.Logger
	policy Policy
}

type Option func(*Notifier)

func WithLogger(logger zerolog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

func WithPolicy(policy Policy) Option {
	return func(n *Notifier) {
		n.policy = policy
	}
}

func New(client *httpclient.Client, opts ...Option) *Notifier {
	n := &Notifier{
		client: client,
		logger: log.Logger,
		policy: PolicyLenient,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

func (n *Notifier) Policy() Policy {
	return n.policy
}

// Execute sends exactly one request for svc and classifies the answer.
// Configuration and transport problems are always returned as errors; a
// non-success status only becomes an error under PolicyStrict.
func (n *Notifier) Execute(ctx context.Context, svc Service) (Outcome, error) {
	if n.client == nil || !n.client.HasTransport() {
		return Outcome{}, fmt.Errorf("%w: cannot notify %s", ErrNoTransport, svc.Name())
	}

	logger := n.logger.With().Str("service", svc.Name()).Logger()

	req, err := svc.Prepare(logger)
	if err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return Outcome{}, err
		}

		return Outcome{}, InvalidConfig(err)
	}

	rawQuery := req.Query.Encode()

	logger.Debug().
		Str("method", req.Method).
		Str("url", n.client.URL(req.URL, RedactQuery(rawQuery))).
		Msg("Sending request")

	resp, err := n.client.Do(ctx, req.Method, req.URL, req.Body, n.requestOptions(req, rawQuery)...)
	if err != nil {
		if errors.Is(err, httpclient.ErrCreateRequest) {
			return Outcome{}, InvalidConfig(redactError(err))
		}

		return Outcome{}, fmt.Errorf("%w: %s: %w", ErrTransport, svc.Name(), redactError(err))
	}

	if inspector, ok := svc.(BodyInspector); ok && len(resp.Body) > 0 {
		inspector.InspectBody(logger, resp.Body)
	}

	outcome := Classify(resp.StatusCode, svc.SuccessCode(), svc.Responses(), svc.Name())

	if outcome.Success {
		logger.Info().
			Int("status_code", resp.StatusCode).
			Str("request_id", resp.RequestID).
			Msg(req.Confirmation)

		return outcome, nil
	}

	if n.policy == PolicyStrict {
		outcome.Fatal = true

		return outcome, &RemoteError{
			Service:     svc.Name(),
			StatusCode:  outcome.StatusCode,
			Description: outcome.Description,
		}
	}

	logger.Warn().
		Int("status_code", resp.StatusCode).
		Str("request_id", resp.RequestID).
		Msgf("%s: %s", svc.FailurePrefix(), outcome.Description)

	return outcome, nil
}

func (n *Notifier) requestOptions(req *Request, rawQuery string) []httpclient.RequestOption {
	opts := []httpclient.RequestOption{
		httpclient.WithRawQuery(rawQuery),
	}

	if len(req.Headers) > 0 {
		opts = append(opts, httpclient.WithRequestHeaders(req.Headers))
	}

	if req.Username != "" {
		opts = append(opts, httpclient.WithRequestBasicAuth(req.Username, req.Password))
	}

	return opts
}
