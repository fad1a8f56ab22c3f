package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"simple-directions/internal/config"
	"simple-directions/internal/directions"
)

// API Docs: https://developers.google.com/maps/documentation/directions/get-directions
// Sample request: https://maps.googleapis.com/maps/api/directions/xml?origin=Denver&destination=Boulder&key=API_KEY
const (
	defaultConnectTimeout = 15 * time.Second
	defaultReadTimeout    = 10 * time.Second

	// Upper bound on how much of an error body is kept for diagnostics.
	maxErrorBody = 4 << 10
)

// ErrMissingLocation is returned when origin or destination is empty.
var ErrMissingLocation = errors.New("origin and destination are required")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a directions client from configuration. Zero timeouts fall back
// to 15s to connect and 10s to read.
func NewClient(cfg config.DirectionsConfig, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultDirectionsURL
	}
	return NewClientWithHTTPClient(newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout), baseURL, cfg.APIKey, logger)
}

// NewClientWithHTTPClient creates a directions client around a caller-supplied
// http.Client. This is useful for tests pointing at a local server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "googlemaps-client"),
	}
}

// newHTTPClient bounds connection setup by connect and waiting for the response by
// read. The overall client timeout covers both plus reading the body.
func newHTTPClient(connect, read time.Duration) *http.Client {
	if connect <= 0 {
		connect = defaultConnectTimeout
	}
	if read <= 0 {
		read = defaultReadTimeout
	}

	dialer := &net.Dialer{
		Timeout:   connect,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = connect
	transport.ResponseHeaderTimeout = read

	return &http.Client{
		Transport: transport,
		Timeout:   connect + read,
	}
}

// BuildURL returns the request URL for a directions query. Origin, destination and
// key are percent-encoded, so values containing spaces or '&' survive intact.
func (c *Client) BuildURL(origin, destination string) (string, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return "", ErrMissingLocation
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch performs the directions request and returns the response body. The caller
// must close it. Any failure to obtain a successful response is a
// *directions.FetchError.
func (c *Client) Fetch(ctx context.Context, origin, destination string) (io.ReadCloser, error) {
	u, err := c.BuildURL(origin, destination)
	if err != nil {
		return nil, &directions.FetchError{Op: "build request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &directions.FetchError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/xml")

	c.logger.Debug("fetching directions",
		"origin", origin,
		"destination", destination,
		"url", redactKey(u),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &directions.FetchError{Op: "get", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, &directions.FetchError{
			Op:         "status",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	return resp.Body, nil
}

// GetRoute fetches and parses the route between origin and destination. The response
// stream is closed whether parsing succeeds or fails.
func (c *Client) GetRoute(ctx context.Context, origin, destination string) (*directions.Route, error) {
	body, err := c.Fetch(ctx, origin, destination)
	if err != nil {
		c.logger.Error("failed to fetch directions",
			"origin", origin,
			"destination", destination,
			"error", err,
		)
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(body)

	route, err := directions.Parse(body)
	if err != nil {
		if errors.Is(err, directions.ErrEmptyInput) {
			c.logger.Warn("directions response was empty",
				"origin", origin,
				"destination", destination,
			)
		} else {
			c.logger.Error("failed to parse directions response",
				"origin", origin,
				"destination", destination,
				"error", err,
			)
		}
		return nil, fmt.Errorf("failed to parse directions: %w", err)
	}

	c.logger.Debug("successfully fetched directions",
		"origin", origin,
		"destination", destination,
		"steps", route.StepCount(),
		"points", route.PointCount(),
	)

	return route, nil
}

// redactKey hides the API key in a request URL so it can be logged.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
