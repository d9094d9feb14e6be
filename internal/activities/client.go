package activities

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/activityboard/internal/activities"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Doer executes HTTP requests.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls the activities API over JSON/HTTP.
type Client struct {
	baseURL *url.URL
	doer    Doer
	tracer  trace.Tracer
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithDoer replaces the HTTP transport.
func WithDoer(doer Doer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(provider trace.TracerProvider) ClientOption {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// NewClient builds a client rooted at baseURL. Paths are resolved relative to
// the base, so "http://host/api" and "http://host/api/" behave the same.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("activities base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse activities base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("activities base url %q must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("activities base url %q has no host", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
		if parsed.RawPath != "" {
			parsed.RawPath += "/"
		}
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""

	client := &Client{
		baseURL: parsed,
		doer:    http.DefaultClient,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// ListActivities fetches the full activity collection.
func (c *Client) ListActivities(ctx context.Context) (Collection, error) {
	ctx, span := c.tracer.Start(ctx, "activities.List", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	status, body, err := c.do(ctx, http.MethodGet, c.baseURL.ResolveReference(&url.URL{Path: "activities"}))
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("list activities: %w", err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status < 200 || status > 299 {
		err := responseError(status, body)
		recordError(span, err)
		return nil, fmt.Errorf("list activities: %w", err)
	}
	collection, err := DecodeCollection(body)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("list activities: %w", err)
	}
	span.SetAttributes(attribute.Int("activities.count", len(collection)))
	return collection, nil
}

// Signup registers email for the named activity.
func (c *Client) Signup(ctx context.Context, activity string, email string) (Result, error) {
	return c.mutate(ctx, "signup", activity, email)
}

// Unregister removes email from the named activity.
func (c *Client) Unregister(ctx context.Context, activity string, email string) (Result, error) {
	return c.mutate(ctx, "unregister", activity, email)
}

func (c *Client) mutate(ctx context.Context, action string, activity string, email string) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "activities."+action,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("activities.name", activity)),
	)
	defer span.End()

	target, err := c.mutationURL(action, activity, email)
	if err != nil {
		recordError(span, err)
		return Result{}, fmt.Errorf("%s %q: %w", action, activity, err)
	}
	status, body, err := c.do(ctx, http.MethodPost, target)
	if err != nil {
		recordError(span, err)
		return Result{}, fmt.Errorf("%s %q: %w", action, activity, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status < 200 || status > 299 {
		err := responseError(status, body)
		recordError(span, err)
		return Result{}, fmt.Errorf("%s %q: %w", action, activity, err)
	}
	message, _, err := decodeResult(body)
	if err != nil {
		recordError(span, err)
		return Result{}, fmt.Errorf("%s %q: %w", action, activity, err)
	}
	return Result{Message: message}, nil
}

// mutationURL builds {base}/activities/{activity}/{action}?email={email}
// with the activity escaped as a single path segment.
func (c *Client) mutationURL(action string, activity string, email string) (*url.URL, error) {
	ref, err := url.Parse("activities/" + url.PathEscape(activity) + "/" + action)
	if err != nil {
		return nil, fmt.Errorf("build %s url: %w", action, err)
	}
	ref.RawQuery = url.Values{"email": []string{email}}.Encode()
	return c.baseURL.ResolveReference(ref), nil
}

func (c *Client) do(ctx context.Context, method string, target *url.URL) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// responseError maps a non-2xx response to an APIError, or to a malformed
// response error when the body is not the documented JSON shape.
func responseError(status int, body []byte) error {
	_, detail, err := decodeResult(body)
	if err != nil {
		return fmt.Errorf("status %d: %w", status, err)
	}
	return &APIError{StatusCode: status, Detail: detail}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
