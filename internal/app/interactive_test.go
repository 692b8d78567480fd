// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"
	"testing/synctest"
	"time"

	"github.com/wneessen/cityweather/internal/presenter"
)

func TestApp_Interactive(t *testing.T) {
	t.Run("commands and cities are processed until quit", func(t *testing.T) {
		app, out := testApp(t)
		api := newMockAPI(t)
		app.http.Transport = testMockTransport(api)

		in := strings.NewReader("Paris\n:theme\n\n:quit\nBerlin\n")
		if err := app.Interactive(t.Context(), in); err != nil {
			t.Fatalf("interactive mode failed: %s", err)
		}
		output := out.String()
		if got := strings.Count(output, "Paris: 18.2°C"); got != 2 {
			t.Errorf("expected two lookups for Paris, got %d:\n%s", got, output)
		}
		if strings.Contains(output, "Berlin") {
			t.Errorf("expected input after quit to be ignored, got:\n%s", output)
		}
		if !strings.Contains(output, "Theme: dark\n") {
			t.Errorf("expected theme notice, got:\n%s", output)
		}
		if !app.Theme().IsDark() {
			t.Error("expected dark theme after toggle")
		}
		if api.currentCalls.Load() != 2 {
			t.Errorf("expected 2 current weather requests, got %d", api.currentCalls.Load())
		}
	})
	t.Run("json output keeps every line a json document", func(t *testing.T) {
		t.Setenv("CITYWEATHER_OUTPUT", "json")
		app, out := testApp(t)
		api := newMockAPI(t)
		app.http.Transport = testMockTransport(api)

		if err := app.Interactive(t.Context(), strings.NewReader(":theme\nParis\n")); err != nil {
			t.Fatalf("interactive mode failed: %s", err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 output lines, got %d:\n%s", len(lines), out.String())
		}
		for _, line := range lines {
			if !json.Valid([]byte(line)) {
				t.Errorf("expected line to be a JSON document, got %q", line)
			}
		}
		var notice presenter.NoticeDocument
		if err := json.Unmarshal([]byte(lines[0]), &notice); err != nil {
			t.Fatalf("failed to decode notice: %s", err)
		}
		if notice.Label != "Theme" || notice.Value != "dark" {
			t.Errorf("unexpected notice document: %+v", notice)
		}
	})
	t.Run("quit commands are case insensitive", func(t *testing.T) {
		for _, cmd := range []string{":quit", ":q", ":QUIT", "  :q  "} {
			t.Run(cmd, func(t *testing.T) {
				app, out := testApp(t)
				app.http.Transport = testMockTransport(newMockAPI(t))
				if err := app.Interactive(t.Context(), strings.NewReader(cmd+"\nParis\n")); err != nil {
					t.Fatalf("interactive mode failed: %s", err)
				}
				if out.Len() != 0 {
					t.Errorf("expected no output, got %q", out.String())
				}
			})
		}
	})
	t.Run("the input reader stops after quit", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			app, out := testApp(t)
			in := strings.NewReader(":quit\nBerlin\nRome\n")
			if err := app.Interactive(context.Background(), in); err != nil {
				t.Fatalf("interactive mode failed: %s", err)
			}
			// A reader still blocked on the next line would keep the bubble from finishing.
			synctest.Wait()
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	})
	t.Run("empty line without previous lookup does nothing", func(t *testing.T) {
		app, out := testApp(t)
		api := newMockAPI(t)
		app.http.Transport = testMockTransport(api)
		if err := app.Interactive(t.Context(), strings.NewReader("\n\n")); err != nil {
			t.Fatalf("interactive mode failed: %s", err)
		}
		if out.Len() != 0 || api.currentCalls.Load() != 0 {
			t.Errorf("expected no lookups, got output %q and %d requests", out.String(),
				api.currentCalls.Load())
		}
	})
	t.Run("the last lookup from the command line is repeated", func(t *testing.T) {
		app, out := testApp(t)
		api := newMockAPI(t)
		app.http.Transport = testMockTransport(api)
		if err := app.Lookup(t.Context(), "Paris"); err != nil {
			t.Fatalf("lookup failed: %s", err)
		}
		if err := app.Interactive(t.Context(), strings.NewReader("\n")); err != nil {
			t.Fatalf("interactive mode failed: %s", err)
		}
		if got := strings.Count(out.String(), "Paris: 18.2°C"); got != 2 {
			t.Errorf("expected two lookups for Paris, got %d", got)
		}
	})
	t.Run("failed lookups do not end interactive mode", func(t *testing.T) {
		app, out := testApp(t)
		api := newMockAPI(t)
		api.currentFile, api.currentStatus = testNotFoundFile, 404
		app.http.Transport = testMockTransport(api)
		if err := app.Interactive(t.Context(), strings.NewReader("Atlantis\nLemuria\n")); err != nil {
			t.Fatalf("interactive mode failed: %s", err)
		}
		if got := strings.Count(out.String(), "Error: City not found."); got != 2 {
			t.Errorf("expected two alerts, got %d:\n%s", got, out.String())
		}
	})
	t.Run("read errors are returned", func(t *testing.T) {
		app, _ := testApp(t)
		err := app.Interactive(t.Context(), iotest.ErrReader(errors.New("broken pipe")))
		if err == nil {
			t.Fatal("expected interactive mode to fail")
		}
		wantErr := "failed to read input: broken pipe"
		if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("expected error to contain %q, got %q", wantErr, err)
		}
	})
	t.Run("canceling the context ends interactive mode", func(t *testing.T) {
		app, _ := testApp(t)
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			done <- app.Interactive(ctx, reader)
		}()
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected no error, got %s", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("interactive mode did not return after cancel")
		}
	})
}

func TestApp_HandleThemeToggleSignal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		app, out := testApp(t)
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		go app.HandleThemeToggleSignal(ctx, sigChan)

		sigChan <- syscall.SIGUSR1
		synctest.Wait()
		if !app.Theme().IsDark() {
			t.Error("expected dark theme after first signal")
		}
		sigChan <- syscall.SIGUSR1
		synctest.Wait()
		if app.Theme().IsDark() {
			t.Error("expected light theme after second signal")
		}
		want := "Theme: dark\nTheme: light\n"
		if out.String() != want {
			t.Errorf("unexpected output:\nwant: %q\ngot:  %q", want, out.String())
		}

		cancel()
		synctest.Wait()
	})
}
