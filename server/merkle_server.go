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

// Package server contains the HTTP front end for building Merkle trees,
// extracting inclusion proofs and verifying them.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/sparse"
	"github.com/google/sparsemerkle/monitoring"
	"github.com/google/sparsemerkle/util/clock"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

const (
	handlerLabel = "handler"
	codeLabel    = "code"

	// statusClientClosedRequest reports a request the client gave up on.
	statusClientClosedRequest = 499

	defaultMaxBodyBytes      = 64 << 20
	defaultMaxChecks         = 1024
	defaultVerifyParallelism = 8
)

var (
	errBadStrategy = errors.New("unsupported hash strategy")
	errBadBody     = errors.New("malformed request body")
)

// Options configures a MerkleServer.
type Options struct {
	// DefaultStrategy is used by requests that do not name a strategy.
	// Unset means sparse.DefaultStrategy.
	DefaultStrategy sparsemerkle.HashStrategy
	// Strategies lists the strategies the server accepts. Empty means only
	// DefaultStrategy.
	Strategies []sparsemerkle.HashStrategy
	// MetricFactory records request metrics and is handed to the builders.
	// Nil means inert metrics.
	MetricFactory monitoring.MetricFactory
	// TimeSource measures request latency. Nil means clock.System.
	TimeSource clock.TimeSource
	// MaxBodyBytes caps the size of a request body. Zero means 64MiB.
	MaxBodyBytes int64
	// MaxChecks caps the number of proofs in one verify request. Zero means
	// 1024.
	MaxChecks int
	// VerifyParallelism is the number of proofs of one request verified at
	// once. Zero means 8.
	VerifyParallelism int
}

type strategyPair struct {
	b *sparse.Builder
	v *sparse.Verifier
}

// MerkleServer serves the tree API over HTTP. It is safe for concurrent use.
type MerkleServer struct {
	opts       Options
	strategies map[sparsemerkle.HashStrategy]strategyPair

	requests monitoring.Counter
	inFlight monitoring.Gauge
	latency  monitoring.Histogram
}

// NewMerkleServer creates a MerkleServer with a builder and verifier for
// each configured strategy.
func NewMerkleServer(opts Options) (*MerkleServer, error) {
	if opts.DefaultStrategy == sparsemerkle.UnknownHashStrategy {
		opts.DefaultStrategy = sparse.DefaultStrategy
	}
	if opts.MetricFactory == nil {
		opts.MetricFactory = monitoring.InertMetricFactory{}
	}
	if opts.TimeSource == nil {
		opts.TimeSource = clock.System
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.MaxChecks == 0 {
		opts.MaxChecks = defaultMaxChecks
	}
	if opts.VerifyParallelism <= 0 {
		opts.VerifyParallelism = defaultVerifyParallelism
	}

	s := &MerkleServer{
		opts:       opts,
		strategies: make(map[sparsemerkle.HashStrategy]strategyPair),
	}
	all := append([]sparsemerkle.HashStrategy{opts.DefaultStrategy}, opts.Strategies...)
	for _, hs := range all {
		if _, ok := s.strategies[hs]; ok {
			continue
		}
		sopts := sparse.Options{MetricFactory: opts.MetricFactory, TimeSource: opts.TimeSource}
		b, err := sparse.NewBuilderForStrategy(hs, sopts)
		if err != nil {
			return nil, fmt.Errorf("strategy %v: %v", hs, err)
		}
		v, err := sparse.NewVerifierForStrategy(hs, sopts)
		if err != nil {
			return nil, fmt.Errorf("strategy %v: %v", hs, err)
		}
		s.strategies[hs] = strategyPair{b: b, v: v}
	}

	mf := opts.MetricFactory
	s.requests = mf.NewCounter("http_requests", "Number of API requests, by handler and status code", handlerLabel, codeLabel)
	s.inFlight = mf.NewGauge("http_requests_in_flight", "Number of API requests being served", handlerLabel)
	s.latency = mf.NewHistogram("http_request_latency_seconds", "Latency of API requests in seconds", handlerLabel)
	return s, nil
}

// RegisterHandlers adds the API endpoints to mux.
func (s *MerkleServer) RegisterHandlers(mux *http.ServeMux) error {
	mux.Handle("POST /v1/root", s.instrument("root", s.root))
	mux.Handle("POST /v1/proof", s.instrument("proof", s.proof))
	mux.Handle("POST /v1/verify", s.instrument("verify", s.verify))
	return nil
}

// IsHealthy checks that every configured builder reproduces the root of a
// single zero leaf from its padding table.
func (s *MerkleServer) IsHealthy(ctx context.Context) error {
	for hs, p := range s.strategies {
		if err := ctx.Err(); err != nil {
			return err
		}
		root, err := p.b.RootFromLeaves([]sparsemerkle.Digest{{}})
		if err != nil {
			return fmt.Errorf("%v: %v", hs, err)
		}
		ok, err := p.v.Verify(root, sparsemerkle.Digest{}, 0, p.b.EmptyNodeHashes().Proof())
		if err != nil || !ok {
			return fmt.Errorf("%v: self check failed: %v", hs, err)
		}
	}
	return nil
}

// apiHandler returns the response body or an error to be mapped to a status.
type apiHandler func(*http.Request) (interface{}, error)

func (s *MerkleServer) instrument(name string, h apiHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.opts.TimeSource.Now()
		s.inFlight.Inc(name)
		defer s.inFlight.Dec(name)

		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
		code := http.StatusOK
		resp, err := h(r)
		if err != nil {
			code = statusFor(err)
			if code >= http.StatusInternalServerError {
				klog.Errorf("%s: %v", name, err)
			} else {
				klog.V(1).Infof("%s: rejected request: %v", name, err)
			}
			resp = errorResponse{Error: err.Error()}
		}
		writeJSON(w, code, resp)

		s.requests.Inc(name, strconv.Itoa(code))
		s.latency.Observe(clock.SecondsSince(s.opts.TimeSource, start), name)
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Warningf("Failed to write response: %v", err)
	}
}

// statusFor maps an error to the HTTP status code reported to the client.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusClientClosedRequest
	case errors.Is(err, errBadStrategy),
		errors.Is(err, errInvalidArgument),
		errors.Is(err, errBadBody),
		errors.Is(err, sparse.ErrEmptyInput),
		errors.Is(err, sparse.ErrTooManyLeaves),
		errors.Is(err, sparse.ErrIndexOutOfRange),
		errors.Is(err, sparse.ErrInvalidProofLength):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func (s *MerkleServer) pair(name string) (sparsemerkle.HashStrategy, strategyPair, error) {
	hs := s.opts.DefaultStrategy
	if name != "" {
		var err error
		if hs, err = sparsemerkle.ParseHashStrategy(name); err != nil {
			return hs, strategyPair{}, fmt.Errorf("%w: %q", errBadStrategy, name)
		}
	}
	p, ok := s.strategies[hs]
	if !ok {
		return hs, strategyPair{}, fmt.Errorf("%w: %v", errBadStrategy, hs)
	}
	return hs, p, nil
}

// build computes the tree a TreeRequest describes.
func (s *MerkleServer) build(req *TreeRequest) (sparsemerkle.HashStrategy, sparse.Tree, error) {
	hs, p, err := s.pair(req.HashStrategy)
	if err != nil {
		return hs, nil, err
	}
	var t sparse.Tree
	if len(req.Items) > 0 {
		t, err = p.b.BuildFromItems(req.Items)
	} else {
		t, err = p.b.BuildFromLeaves(req.Leaves)
	}
	return hs, t, err
}

func (s *MerkleServer) root(r *http.Request) (interface{}, error) {
	var req TreeRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	if err := validateTreeRequest(&req); err != nil {
		return nil, err
	}
	hs, t, err := s.build(&req)
	if err != nil {
		return nil, err
	}
	return &RootResponse{HashStrategy: hs.String(), Root: t.Root(), LeafCount: len(t.Leaves())}, nil
}

func (s *MerkleServer) proof(r *http.Request) (interface{}, error) {
	var req ProofRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	if err := validateProofRequest(&req); err != nil {
		return nil, err
	}
	hs, t, err := s.build(&req.TreeRequest)
	if err != nil {
		return nil, err
	}
	proof, err := t.Proof(req.Index)
	if err != nil {
		return nil, err
	}
	return &ProofResponse{
		HashStrategy: hs.String(),
		Root:         t.Root(),
		Index:        req.Index,
		Leaf:         t.Leaves()[req.Index],
		Proof:        proof,
	}, nil
}

func (s *MerkleServer) verify(r *http.Request) (interface{}, error) {
	var req VerifyRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	if err := validateVerifyRequest(&req, s.opts.MaxChecks); err != nil {
		return nil, err
	}
	hs, p, err := s.pair(req.HashStrategy)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, len(req.Checks))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.opts.VerifyParallelism)
	for i, c := range req.Checks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := p.v.Verify(c.Root, c.Leaf, c.Index, c.Proof)
			results[i].Valid = ok
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &VerifyResponse{HashStrategy: hs.String(), Results: results}, nil
}
