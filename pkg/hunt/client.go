// Package hunt is the client for the Orca HUNT search API. It binds a
// resolved configuration to an HTTP client and wraps every outbound call
// with a bounded retry for server-side failures.
package hunt

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/justinmccuistion/orca-ai-mcp/pkg/config"
)

const apiKeyHeader = "x-api-key"

// retryBaseDelay is multiplied by the attempt number, so consecutive
// retries wait 1s, 2s, 3s. Variable so tests can shrink it.
var retryBaseDelay = time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is an HTTP client bound to one resolved configuration. It is
// cheap to construct and safe for concurrent use; retry state lives in
// each call, never on the client.
type Client struct {
	baseURL string
	token   string
	retries int
	http    *http.Client
}

// NewClient binds a client to the given configuration. The configured
// timeout covers each individual attempt, connection included.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.APIToken,
		retries: cfg.Retries,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
	}
}

// Do issues a request against the bound upstream and returns the response
// body. Only server-side failures (status >= 500) are retried, with a
// linearly growing delay, up to the configured retry budget; when the
// budget runs out the last error surfaces unchanged. Network errors and
// 4xx responses propagate immediately.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
	}

	var out []byte
	err := retry.Do(
		func() error {
			data, err := c.once(ctx, method, path, payload)
			if err != nil {
				return err
			}
			out = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.retries)+1),
		retry.RetryIf(isServerError),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * retryBaseDelay
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// once performs a single attempt.
func (c *Client) once(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// isServerError is the retry predicate: only upstream 5xx responses count
// as transient.
func isServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
