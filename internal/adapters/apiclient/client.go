package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
	"github.com/Glorc12/MebelCorpPractic/internal/metrics"
)

const maxErrorBody = 64 << 10

// Client talks to the catalog REST API (base path /api).
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Metrics
}

type Options struct {
	Timeout            time.Duration
	BreakerFailures    uint32
	BreakerOpenTimeout time.Duration
	Metrics            *metrics.Metrics
	HTTPClient         *http.Client
}

func New(baseURL string, opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	if opt.BreakerFailures == 0 {
		opt.BreakerFailures = 5
	}
	if opt.BreakerOpenTimeout <= 0 {
		opt.BreakerOpenTimeout = 30 * time.Second
	}
	hc := opt.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opt.Timeout}
	}
	failures := opt.BreakerFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "catalog-api",
		Timeout: opt.BreakerOpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		breaker:    cb,
		metrics:    opt.Metrics,
	}
}

// abandonedError marks a request whose caller context ended first. It says
// nothing about the backend.
type abandonedError struct{ err error }

func (e *abandonedError) Error() string { return e.err.Error() }
func (e *abandonedError) Unwrap() error { return e.err }

// countsAsSuccess keeps 4xx answers and abandoned requests from tripping the
// breaker.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var ab *abandonedError
	if errors.As(err, &ab) {
		return true
	}
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError
}

// do sends one JSON request. endpoint is the route pattern used as metric
// label; path is the concrete path. out may be nil.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация запроса %s: %w", path, err)
		}
		payload = b
	}

	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		res, err := c.httpClient.Do(req)
		if err != nil {
			netErr := &domain.NetworkError{Op: method + " " + path, Err: err}
			if ctx.Err() != nil {
				return nil, &abandonedError{err: netErr}
			}
			return nil, netErr
		}
		defer res.Body.Close()
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, decodeError(res)
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, res.Body)
			return nil, nil
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("ответ %s %s: %w", method, path, err)
		}
		return nil, nil
	})
	var ab *abandonedError
	if errors.As(err, &ab) {
		err = ab.err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	c.observe(method, endpoint, err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("catalog api")
	}
	return err
}

func (c *Client) observe(method, endpoint string, err error, d time.Duration) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	var apiErr *domain.APIError
	var netErr *domain.NetworkError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		outcome = fmt.Sprintf("%dxx", apiErr.Status/100)
	case errors.As(err, &netErr):
		outcome = "network"
	default:
		outcome = "decode"
	}
	c.metrics.ObserveAPI(method, endpoint, outcome, d)
}

// decodeError turns a non-2xx answer into *domain.APIError. The text comes
// from "error", then "message"; without either the status is reported.
func decodeError(res *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	apiErr := &domain.APIError{Status: res.StatusCode}
	if err := json.Unmarshal(b, &body); err == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
		apiErr.Code = body.Code
	}
	return apiErr
}
