// Package apiclient talks to the TrainMate REST backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/trainmate/internal/observability"
)

const maxErrorBody = 64 << 10

// Endpoints locates each REST collection.
type Endpoints struct {
	Trainees      string
	ExerciseTypes string
	Exercises     string
	Workouts      string
	Auth          string
}

// DefaultEndpoints derives every collection URL from base.
func DefaultEndpoints(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		Trainees:      base + "/trainees",
		ExerciseTypes: base + "/exerciseTypes",
		Exercises:     base + "/exercises",
		Workouts:      base + "/workouts",
		Auth:          base + "/auth",
	}
}

// Merge fills empty overrides from defaults.
func (e Endpoints) Merge(defaults Endpoints) Endpoints {
	pick := func(override, fallback string) string {
		if strings.TrimSpace(override) == "" {
			return fallback
		}
		return strings.TrimRight(override, "/")
	}
	return Endpoints{
		Trainees:      pick(e.Trainees, defaults.Trainees),
		ExerciseTypes: pick(e.ExerciseTypes, defaults.ExerciseTypes),
		Exercises:     pick(e.Exercises, defaults.Exercises),
		Workouts:      pick(e.Workouts, defaults.Workouts),
		Auth:          pick(e.Auth, defaults.Auth),
	}
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Endpoints Endpoints
	Timeout   time.Duration
	// Tokens supplies the bearer token attached to every request.
	Tokens TokenSource
	// Transport overrides the underlying round tripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is a thin JSON client over the backend collections.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

// New constructs a client with sane defaults.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewBearerTransport(cfg.Transport, cfg.Tokens),
		},
		endpoints: cfg.Endpoints.Merge(DefaultEndpoints(cfg.BaseURL)),
	}
}

// Endpoints returns the resolved collection URLs.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

type call struct {
	resource string
	method   string
	url      string
	body     any
	out      any
	fallback string
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		observability.ObserveRequest(cl.resource, cl.method, outcome, time.Since(start))
	}()

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			outcome = "encode"
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, body)
	if err != nil {
		outcome = "encode"
		return err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport"
		return &TransportError{Op: cl.fallback, Err: err}
	}
	defer resp.Body.Close()

	if err := handleJSON(resp, cl.fallback, cl.out); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			outcome = "rejected"
		} else {
			outcome = "decode"
		}
		return err
	}
	return nil
}

// handleJSON maps a response onto out. Non-2xx statuses become a
// RequestError carrying the response text; 204 and empty bodies decode to nothing.
func handleJSON(resp *http.Response, fallback string, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Op: fallback, Status: resp.StatusCode}
		if text, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
			reqErr.Body = strings.TrimSpace(string(text))
		}
		return reqErr
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &DecodeError{Op: fallback, Err: err}
	}
	return nil
}

func itemURL(collection string, id string) string {
	return collection + "/" + url.PathEscape(id)
}
