// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/cityweather/internal/logger"
	"github.com/wneessen/cityweather/internal/testhelper"
)

type testType struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

const testFile = "../../testdata/testtype.json"

func TestNew(t *testing.T) {
	client := New(logger.New(slog.LevelInfo))
	if client == nil {
		t.Fatal("expected client to be non-nil")
	}
	if client.Timeout != DefaultTimeout {
		t.Errorf("expected client timeout to be %s, got %s", DefaultTimeout, client.Timeout)
	}
}

func TestClient_GetJSON(t *testing.T) {
	t.Run("getting and serializing JSON should work", func(t *testing.T) {
		var gotReq *stdhttp.Request
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			return testhelper.FileResponse(t, testFile), nil
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		query := url.Values{}
		query.Add("q", "Kragujevac")
		target := new(testType)
		code, err := client.GetJSON(t.Context(), "https://example.com/data", query, target, 0)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if code != 200 {
			t.Errorf("expected status code 200, got %d", code)
		}
		if target.String != "test" {
			t.Errorf("expected target string to be 'test', got %s", target.String)
		}
		if target.Int != 123 {
			t.Errorf("expected target int to be 123, got %d", target.Int)
		}
		if target.Float != 123.456 {
			t.Errorf("expected target float to be 123.456, got %f", target.Float)
		}
		if !target.Bool {
			t.Error("expected target bool to be true")
		}
		if gotReq == nil {
			t.Fatal("expected request to be recorded")
		}
		if gotReq.URL.Query().Get("q") != "Kragujevac" {
			t.Errorf("expected query parameter q to be 'Kragujevac', got %q", gotReq.URL.Query().Get("q"))
		}
		if gotReq.Header.Get("Accept") != "application/json" {
			t.Errorf("expected accept header to be application/json, got %q", gotReq.Header.Get("Accept"))
		}
		if gotReq.Method != stdhttp.MethodGet {
			t.Errorf("expected GET request, got %s", gotReq.Method)
		}
		if gotReq.Header.Get("User-Agent") != UserAgent {
			t.Errorf("expected user agent to be %q, got %q", UserAgent, gotReq.Header.Get("User-Agent"))
		}
	})
	t.Run("non-200 responses are still decoded", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.FileResponseWithStatus(t, testFile, stdhttp.StatusNotFound), nil
		}
		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		code, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err != nil {
			t.Fatalf("expected get to succeed, got: %s", err)
		}
		if code != stdhttp.StatusNotFound {
			t.Errorf("expected status code %d, got %d", stdhttp.StatusNotFound, code)
		}
		if target.String != "test" {
			t.Errorf("expected target string to be 'test', got %s", target.String)
		}
	})
	t.Run("unmarshalling into non-pointer should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		var target testType
		_, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !errors.Is(err, ErrNonPointerTarget) {
			t.Errorf("expected error to be %s, got %s", ErrNonPointerTarget, err)
		}
	})
	t.Run("parsing an invalid url should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		target := new(testType)
		_, err := client.GetJSON(t.Context(), "http://example.com/xyz%", nil, target, 0)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse URL") {
			t.Errorf("expected error to contain 'failed to parse URL', got %s", err)
		}
	})
	t.Run("get request fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !strings.Contains(err.Error(), "failed to perform HTTP request") {
			t.Errorf("expected error to contain 'failed to perform HTTP request', got %s", err)
		}
	})
	t.Run("decoding a broken body fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("{not json")),
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		code, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if code != 200 {
			t.Errorf("expected status code 200 to be returned, got %d", code)
		}
		if !strings.Contains(err.Error(), "failed to decode JSON") {
			t.Errorf("expected error to contain 'failed to decode JSON', got %s", err)
		}
	})
	t.Run("body that fails to close is logged", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       &failReadCloser{},
				Header:     make(stdhttp.Header),
			}, nil
		}

		buf := new(strings.Builder)
		client := New(logger.NewLogger(slog.LevelInfo, buf))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !strings.Contains(buf.String(), "failed to close HTTP response body") {
			t.Errorf("expected close failure to be logged, got %q", buf.String())
		}
	})
}

func TestClient_GetJSON_Limits(t *testing.T) {
	t.Run("oversized bodies are cut off", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			body := `{"string":"` + strings.Repeat("a", maxBodySize) + `"}`
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(stdhttp.Header),
			}, nil
		}
		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.GetJSON(t.Context(), "https://example.com", nil, target, 0)
		if err == nil {
			t.Fatal("expected decoding of oversized body to fail")
		}
		if !strings.Contains(err.Error(), "failed to decode JSON") {
			t.Errorf("expected error to contain 'failed to decode JSON', got %s", err)
		}
	})
	t.Run("zero timeout uses the default timeout", func(t *testing.T) {
		var deadline time.Time
		var hasDeadline bool
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			deadline, hasDeadline = req.Context().Deadline()
			return testhelper.FileResponse(t, testFile), nil
		}
		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		start := time.Now()
		if _, err := client.GetJSON(t.Context(), "https://example.com", nil, new(testType), 0); err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if !hasDeadline {
			t.Fatal("expected request context to carry a deadline")
		}
		if remaining := deadline.Sub(start); remaining > DefaultTimeout || remaining < DefaultTimeout-time.Second {
			t.Errorf("expected deadline about %s after start, got %s", DefaultTimeout, remaining)
		}
	})
}

func TestClient_GetJSON_Timeout(t *testing.T) {
	t.Run("get request fails on context cancel", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}
		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.GetJSON(t.Context(), "https://example.com", nil, target, time.Millisecond)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected error to be %s, got %s", context.DeadlineExceeded, err)
		}
	})
	t.Run("get request against the live API", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		client := New(logger.New(slog.LevelInfo))
		ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond)
		defer cancel()

		target := new(testType)
		_, err := client.GetJSON(ctx, testhelper.TestOnlineAPIURL, nil, target, time.Second*5)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected error to be %s, got %s", context.DeadlineExceeded, err)
		}
	})
}

type failReadCloser struct{}

func (failReadCloser) Read(p []byte) (int, error) { return len(p), nil }
func (failReadCloser) Close() error               { return errors.New("failed to close") }
