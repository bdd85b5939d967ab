package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-tourneyform/pkg/model"
)

const (
	// DefaultPath is the endpoint every collection is posted to.
	DefaultPath = "/tournament"
	// RequestIDHeader carries the per-attempt id.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

var tracer = otel.Tracer("github.com/goliatone/go-tourneyform/pkg/submit")

// Sender delivers an envelope to the remote API. A nil error means the API
// accepted the envelope. Rejections are reported as *RejectionError and
// failures to get a response as *TransportError.
type Sender interface {
	Send(ctx context.Context, envelope model.Envelope) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, envelope model.Envelope) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, envelope model.Envelope) error {
	return f(ctx, envelope)
}

// Ensure HTTPClient implements Sender interface.
var _ Sender = (*HTTPClient)(nil)

// HTTPClient posts envelopes as JSON to baseURL + path.
type HTTPClient struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*clientConfig)

type clientConfig struct {
	client  *http.Client
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		if client != nil {
			cfg.client = client
		}
	}
}

// WithPath overrides DefaultPath.
func WithPath(path string) ClientOption {
	return func(cfg *clientConfig) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			cfg.path = trimmed
		}
	}
}

// WithTimeout bounds each request. It only applies when no custom client is
// supplied.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientLogger sets the logger used for request traces.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewHTTPClient validates baseURL and builds a client for it.
func NewHTTPClient(baseURL string, options ...ClientOption) (*HTTPClient, error) {
	cfg := clientConfig{
		path:    DefaultPath,
		timeout: 15 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("submit: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("submit: base url %q must be http or https", baseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("submit: base url %q has no host", baseURL)
	}

	client := cfg.client
	if client == nil {
		client = &http.Client{Timeout: cfg.timeout}
	}

	return &HTTPClient{
		client:   client,
		endpoint: joinURL(base, cfg.path),
		logger:   cfg.logger,
	}, nil
}

// Endpoint returns the URL envelopes are posted to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Send implements Sender.
func (c *HTTPClient) Send(ctx context.Context, envelope model.Envelope) error {
	requestID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "HTTPClient.Send", trace.WithAttributes(
		attribute.String("collection", envelope.Collection),
		attribute.String("request_id", requestID),
		attribute.String("url", c.endpoint),
	))
	defer span.End()

	body, err := json.Marshal(envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to encode envelope")
		return &TransportError{Err: fmt.Errorf("encode envelope: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct request")
		return &TransportError{Err: fmt.Errorf("request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With("collection", envelope.Collection, "request_id", requestID)
	logger.DebugContext(ctx, "posting envelope", "url", c.endpoint, "bytes", len(body))

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send envelope")
		logger.WarnContext(ctx, "envelope not delivered", "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response")
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rejection := &RejectionError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(payload),
		}
		span.RecordError(rejection)
		span.SetStatus(codes.Error, "envelope rejected")
		logger.WarnContext(ctx, "envelope rejected", "status", resp.StatusCode, "message", rejection.Message)
		return rejection
	}

	if len(bytes.TrimSpace(payload)) > 0 && !json.Valid(payload) {
		err := &TransportError{Err: ErrMalformedResponse}
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response body")
		logger.WarnContext(ctx, "accepted response is not JSON", "status", resp.StatusCode)
		return err
	}

	span.SetStatus(codes.Ok, "envelope accepted")
	logger.DebugContext(ctx, "envelope accepted", "status", resp.StatusCode)
	return nil
}

// errorMessage extracts the "error" string from a JSON error body.
func errorMessage(payload []byte) string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if msg, ok := body.Error.(string); ok {
		return msg
	}
	return ""
}

func joinURL(base *url.URL, path string) string {
	out := *base
	out.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	out.RawPath = ""
	return out.String()
}

// IsTransport reports whether err is a transport level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
