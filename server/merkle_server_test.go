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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/sparsemerkle"
	_ "github.com/google/sparsemerkle/merkle/sha2" // Register SHA256 and SHA512_256.
	"github.com/google/sparsemerkle/merkle/sparse"
	"github.com/google/sparsemerkle/merkle/testonly"
	"github.com/google/sparsemerkle/monitoring"
	th "github.com/google/sparsemerkle/testonly"
	"github.com/google/sparsemerkle/util/clock"
)

func newTestServer(t *testing.T, opts Options) (*MerkleServer, http.Handler) {
	t.Helper()
	if len(opts.Strategies) == 0 {
		opts.Strategies = []sparsemerkle.HashStrategy{sparsemerkle.SHA256}
	}
	s, err := NewMerkleServer(opts)
	if err != nil {
		t.Fatalf("NewMerkleServer: %v", err)
	}
	mux := http.NewServeMux()
	if err := s.RegisterHandlers(mux); err != nil {
		t.Fatalf("RegisterHandlers: %v", err)
	}
	return s, mux
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, h http.Handler, path string, body interface{}, wantCode int, resp interface{}) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	rec := post(t, h, path, string(b))
	if rec.Code != wantCode {
		t.Fatalf("POST %s: status %d, want %d; body %s", path, rec.Code, wantCode, rec.Body)
	}
	if resp != nil {
		if err := json.NewDecoder(rec.Body).Decode(resp); err != nil {
			t.Fatalf("POST %s: decoding response: %v", path, err)
		}
	}
}

func abcItems() [][]byte {
	return [][]byte{[]byte("a"), []byte("b"), []byte("c")}
}

func TestRoot(t *testing.T) {
	_, h := newTestServer(t, Options{})
	for _, tc := range []struct {
		strategy string
		want     sparsemerkle.HashStrategy
	}{
		{strategy: "", want: sparsemerkle.KECCAK256},
		{strategy: "keccak256", want: sparsemerkle.KECCAK256},
		{strategy: "SHA256", want: sparsemerkle.SHA256},
	} {
		var got RootResponse
		postJSON(t, h, "/v1/root", TreeRequest{HashStrategy: tc.strategy, Items: abcItems()}, http.StatusOK, &got)
		want := RootResponse{
			HashStrategy: tc.want.String(),
			Root:         th.MustDigest(testonly.VectorsFor(tc.want).RootABC),
			LeafCount:    4,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("strategy %q: response diff (-want +got):\n%s", tc.strategy, diff)
		}
	}
}

func TestRootFromLeaves(t *testing.T) {
	_, h := newTestServer(t, Options{})
	leaves := []sparsemerkle.Digest{{1}, {2}, {3}, {4}, {5}}
	want, err := sparse.RootFromLeaves(leaves)
	if err != nil {
		t.Fatalf("RootFromLeaves: %v", err)
	}

	var got RootResponse
	postJSON(t, h, "/v1/root", TreeRequest{Leaves: leaves}, http.StatusOK, &got)
	if got.Root != want {
		t.Errorf("root %s, want %s", got.Root, want)
	}
	if got.LeafCount != 6 {
		t.Errorf("leaf_count %d, want 6", got.LeafCount)
	}
}

func TestDigestsAreHex(t *testing.T) {
	_, h := newTestServer(t, Options{})
	rec := post(t, h, "/v1/root", `{"leaves": ["0x`+strings.Repeat("ab", 32)+`"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200; body %s", rec.Code, rec.Body)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	root, ok := raw["root"].(string)
	if !ok || len(root) != 64 {
		t.Errorf("root=%v, want 64 hex characters", raw["root"])
	}
}

func TestBadRequests(t *testing.T) {
	_, h := newTestServer(t, Options{MaxBodyBytes: 256})
	for _, tc := range []struct {
		desc string
		path string
		body string
		want int
	}{
		{desc: "no leaves", path: "/v1/root", body: `{}`, want: http.StatusBadRequest},
		{desc: "items and leaves", path: "/v1/root", body: `{"items": ["YQ=="], "leaves": ["` + strings.Repeat("00", 32) + `"]}`, want: http.StatusBadRequest},
		{desc: "unknown strategy", path: "/v1/root", body: `{"hash_strategy": "MD5", "items": ["YQ=="]}`, want: http.StatusBadRequest},
		{desc: "strategy not served", path: "/v1/root", body: `{"hash_strategy": "SHA512_256", "items": ["YQ=="]}`, want: http.StatusBadRequest},
		{desc: "short leaf", path: "/v1/root", body: `{"leaves": ["00"]}`, want: http.StatusBadRequest},
		{desc: "not json", path: "/v1/root", body: `items: a`, want: http.StatusBadRequest},
		{desc: "unknown field", path: "/v1/root", body: `{"items": ["YQ=="], "depth": 7}`, want: http.StatusBadRequest},
		{desc: "index out of range", path: "/v1/proof", body: `{"items": ["YQ=="], "index": 2}`, want: http.StatusBadRequest},
		{desc: "too large", path: "/v1/root", body: `{"items": ["` + strings.Repeat("YWFh", 100) + `"]}`, want: http.StatusRequestEntityTooLarge},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			rec := post(t, h, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d; body %s", rec.Code, tc.want, rec.Body)
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || resp.Error == "" {
				t.Errorf("error body %q, %v: want a JSON error", rec.Body, err)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, h := newTestServer(t, Options{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/root", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/root: status %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestProofAndVerify(t *testing.T) {
	_, h := newTestServer(t, Options{})
	var checks []ProofCheck
	for i := uint64(0); i < 4; i++ {
		var got ProofResponse
		postJSON(t, h, "/v1/proof", ProofRequest{TreeRequest: TreeRequest{Items: abcItems()}, Index: i}, http.StatusOK, &got)
		if got.Index != i || len(got.Proof) != sparse.TreeDepth {
			t.Fatalf("proof %d: index %d with %d siblings", i, got.Index, len(got.Proof))
		}
		if ok, err := sparse.Verify(got.Root, got.Leaf, got.Index, got.Proof); err != nil || !ok {
			t.Errorf("proof %d: Verify=%v, %v, want true, nil", i, ok, err)
		}
		checks = append(checks, ProofCheck{Root: got.Root, Leaf: got.Leaf, Index: got.Index, Proof: got.Proof})
	}

	tampered := checks[1]
	tampered.Proof = append([]sparsemerkle.Digest{}, tampered.Proof...)
	tampered.Proof[0][0] ^= 1
	short := checks[2]
	short.Proof = short.Proof[:5]
	wrongIndex := checks[0]
	wrongIndex.Index = 3
	checks = append(checks, tampered, short, wrongIndex)

	var got VerifyResponse
	postJSON(t, h, "/v1/verify", VerifyRequest{Checks: checks}, http.StatusOK, &got)
	want := VerifyResponse{
		HashStrategy: "KECCAK256",
		Results: []CheckResult{
			{Valid: true}, {Valid: true}, {Valid: true}, {Valid: true},
			{Valid: false},
			{Valid: false, Error: (&sparse.ProofLengthError{Got: 5, Want: sparse.TreeDepth}).Error()},
			{Valid: false},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verify response diff (-want +got):\n%s", diff)
	}
}

func TestVerifyCanceledByClient(t *testing.T) {
	s, h := newTestServer(t, Options{MetricFactory: monitoring.InertMetricFactory{}})
	b, err := json.Marshal(VerifyRequest{Checks: make([]ProofCheck, 3)})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(b)).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != statusClientClosedRequest {
		t.Errorf("status %d, want %d; body %s", rec.Code, statusClientClosedRequest, rec.Body)
	}
	if got := s.requests.Value("verify", "500"); got != 0 {
		t.Errorf("http_requests{verify,500}=%v, want 0", got)
	}
}

func TestStatusFor(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{err: context.Canceled, want: statusClientClosedRequest},
		{err: fmt.Errorf("verify: %w", context.DeadlineExceeded), want: statusClientClosedRequest},
		{err: sparse.ErrEmptyInput, want: http.StatusBadRequest},
		{err: invalidArgument("x"), want: http.StatusBadRequest},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	} {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestVerifyTooManyChecks(t *testing.T) {
	_, h := newTestServer(t, Options{MaxChecks: 2})
	body := VerifyRequest{Checks: make([]ProofCheck, 3)}
	postJSON(t, h, "/v1/verify", body, http.StatusBadRequest, nil)
}

func TestIsHealthy(t *testing.T) {
	s, _ := newTestServer(t, Options{Strategies: []sparsemerkle.HashStrategy{sparsemerkle.SHA256, sparsemerkle.SHA512_256}})
	if err := s.IsHealthy(context.Background()); err != nil {
		t.Errorf("IsHealthy() = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.IsHealthy(ctx); err == nil {
		t.Error("IsHealthy(canceled) = nil, want error")
	}
}

func TestNewMerkleServerUnknownStrategy(t *testing.T) {
	if _, err := NewMerkleServer(Options{Strategies: []sparsemerkle.HashStrategy{sparsemerkle.HashStrategy(99)}}); err == nil {
		t.Error("NewMerkleServer() succeeded with an unregistered strategy")
	}
}

func TestRequestMetrics(t *testing.T) {
	ts := clock.NewTicking(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)
	s, h := newTestServer(t, Options{MetricFactory: monitoring.InertMetricFactory{}, TimeSource: ts})

	postJSON(t, h, "/v1/root", TreeRequest{Items: abcItems()}, http.StatusOK, nil)
	postJSON(t, h, "/v1/root", TreeRequest{}, http.StatusBadRequest, nil)
	rec := post(t, h, "/v1/proof", `{"items": ["YQ=="]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("proof status %d", rec.Code)
	}

	for _, tc := range []struct {
		handler, code string
		want          float64
	}{
		{handler: "root", code: "200", want: 1},
		{handler: "root", code: "400", want: 1},
		{handler: "proof", code: "200", want: 1},
		{handler: "verify", code: "200", want: 0},
	} {
		if got := s.requests.Value(tc.handler, tc.code); got != tc.want {
			t.Errorf("http_requests{%s,%s}=%v, want %v", tc.handler, tc.code, got, tc.want)
		}
	}
	if got := s.inFlight.Value("root"); got != 0 {
		t.Errorf("http_requests_in_flight{root}=%v, want 0", got)
	}
	if count, _ := s.latency.Info("root"); count != 2 {
		t.Errorf("latency count for root %d, want 2", count)
	}
}

func TestResponsesAreJSON(t *testing.T) {
	_, h := newTestServer(t, Options{})
	rec := post(t, h, "/v1/root", `{"items": ["YQ=="]}`)
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type %q, want application/json", got)
	}
	if !json.Valid(bytes.TrimSpace(rec.Body.Bytes())) {
		t.Errorf("body %q is not JSON", rec.Body)
	}
}
