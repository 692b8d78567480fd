// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/wneessen/cityweather/internal/logger"
)

const (
	// DefaultTimeout applies to requests that do not set their own timeout
	DefaultTimeout = time.Second * 10

	// maxBodySize limits how much of a response body is decoded
	maxBodySize = 4 << 20
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent identifies cityweather towards the weather APIs
	UserAgent = fmt.Sprintf("cityweather/%s (%s/%s; +https://github.com/wneessen/cityweather/)",
		version, runtime.GOOS, runtime.GOARCH)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrNilResponse      = errors.New("nil response received")
)

// Client wraps a http.Client with JSON decoding and logging of body close failures.
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a Client that requires TLS 1.2 or later.
func New(log *logger.Logger) *Client {
	transport := &http.Transport{TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12}}
	return &Client{
		Client: &http.Client{Timeout: DefaultTimeout, Transport: transport},
		logger: log,
	}
}

// GetJSON requests endpoint with the given query and decodes the JSON response body into target,
// which must be a non-nil pointer. The body is decoded for every status code, so API error
// documents end up in target too; the status code is returned for the caller to judge. A timeout
// of zero or less selects DefaultTimeout.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, target any,
	timeout time.Duration,
) (int, error) {
	if rv := reflect.ValueOf(target); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := newJSONRequest(ctx, endpoint, query)
	if err != nil {
		return 0, err
	}
	response, err := c.Do(request)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0, err
	case err != nil:
		return 0, fmt.Errorf("failed to perform HTTP request: %w", err)
	case response == nil:
		return 0, ErrNilResponse
	}
	defer c.closeBody(response.Body)

	if err = json.NewDecoder(io.LimitReader(response.Body, maxBodySize)).Decode(target); err != nil {
		return response.StatusCode, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return response.StatusCode, nil
}

func newJSONRequest(ctx context.Context, endpoint string, query url.Values) (*http.Request, error) {
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")
	return request, nil
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.Error("failed to close HTTP response body", logger.Err(err))
	}
}
