// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serverutil_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/google/sparsemerkle/cmd/internal/serverutil"

	_ "net/http/pprof"
)

func pickFreePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		t.Fatalf("unexpected addr type: %T", ln.Addr())
	}
	return addr.Port
}

func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:gosec
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func waitForStatus(t *testing.T, url string, want int) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url) //nolint:gosec
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == want {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %d from %s", want, url)
}

// startServer runs m until the test ends and returns its base URL and a
// channel that receives the result of Run.
func startServer(t *testing.T, m *serverutil.Main) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	httpPort := pickFreePort(t)
	m.HTTPEndpoint = fmt.Sprintf("127.0.0.1:%d", httpPort)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Run(ctx)
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", httpPort)
	waitForStatus(t, baseURL+"/metrics", http.StatusOK)
	return baseURL, cancel, errCh
}

func TestHTTPServerDoesNotExposeDefaultServeMux(t *testing.T) {
	m := &serverutil.Main{
		RegisterHandlerFn: func(mux *http.ServeMux) error {
			mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("pong"))
			})
			return nil
		},
	}
	baseURL, cancel, errCh := startServer(t, m)

	if got, body := httpGet(t, baseURL+"/healthz"); got != http.StatusOK || body != "ok" {
		t.Fatalf("expected 200 ok from /healthz, got %d %q", got, body)
	}
	if got, body := httpGet(t, baseURL+"/v1/ping"); got != http.StatusOK || body != "pong" {
		t.Fatalf("expected 200 pong from /v1/ping, got %d %q", got, body)
	}
	if got, _ := httpGet(t, baseURL+"/debug/pprof/"); got != http.StatusNotFound {
		t.Fatalf("expected 404 from /debug/pprof/, got %d", got)
	}

	cancel()
	select {
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for server shutdown")
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	}
}

func TestHealthzReportsUnhealthy(t *testing.T) {
	m := &serverutil.Main{
		IsHealthy: func(context.Context) error { return errors.New("not ready") },
	}
	baseURL, _, _ := startServer(t, m)

	if got, body := httpGet(t, baseURL+"/healthz"); got != http.StatusServiceUnavailable || body != "not ready" {
		t.Errorf("expected 503 not ready from /healthz, got %d %q", got, body)
	}
}

func TestRegisterHandlerError(t *testing.T) {
	want := errors.New("boom")
	m := &serverutil.Main{
		HTTPEndpoint:      "127.0.0.1:0",
		RegisterHandlerFn: func(*http.ServeMux) error { return want },
	}
	if err := m.Run(context.Background()); !errors.Is(err, want) {
		t.Errorf("Run() = %v, want %v", err, want)
	}
}
