// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for the package tests.
package testhelper

import (
	"net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is a reachable endpoint used by tests that need a real network round trip.
const TestOnlineAPIURL = "https://api.openweathermap.org/data/2.5/weather"

// MockRoundTripper is a http.RoundTripper that delegates to Fn.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

// RoundTrip satisfies the http.RoundTripper interface.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless PERFORM_INTEGRATION_TESTS is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration tests")
	}
}

// FileResponse returns a 200 response with the content of the given file as body.
func FileResponse(t *testing.T, file string) *http.Response {
	t.Helper()
	return FileResponseWithStatus(t, file, http.StatusOK)
}

// FileResponseWithStatus returns a response with the given status code and the content of
// file as body.
func FileResponseWithStatus(t *testing.T, file string, status int) *http.Response {
	t.Helper()
	data, err := os.Open(file)
	if err != nil {
		t.Fatalf("failed to open JSON response file: %s", err)
	}
	return &http.Response{
		StatusCode: status,
		Body:       data,
		Header:     make(http.Header),
	}
}
