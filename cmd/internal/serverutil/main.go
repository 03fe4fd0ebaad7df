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

// Package serverutil holds code for running the HTTP servers of this module.
package serverutil

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/sparsemerkle/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Main encapsulates the data and logic to start an HTTP server.
type Main struct {
	// HTTPEndpoint is the host:port to listen on.
	HTTPEndpoint string

	// TLS Certificate and Key files for the server.
	TLSCertFile, TLSKeyFile string

	// Gatherer is served on "/metrics". Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// RegisterHandlerFn is called to register the API handlers on the mux.
	RegisterHandlerFn func(*http.ServeMux) error

	// IsHealthy will be called whenever "/healthz" is called on the mux.
	// A nil return value from this function will result in a 200-OK response
	// on the /healthz endpoint.
	IsHealthy func(context.Context) error
	// HealthyDeadline is the maximum duration to wait for a successful
	// IsHealthy() call.
	HealthyDeadline time.Duration

	// ShutdownTimeout bounds how long in-flight requests may take to finish
	// once the server is asked to stop.
	ShutdownTimeout time.Duration
}

func (m *Main) healthz(rw http.ResponseWriter, req *http.Request) {
	if m.IsHealthy != nil {
		ctx, cancel := context.WithTimeout(req.Context(), m.HealthyDeadline)
		defer cancel()
		if err := m.IsHealthy(ctx); err != nil {
			rw.WriteHeader(http.StatusServiceUnavailable)
			_, _ = rw.Write([]byte(err.Error()))
			return
		}
	}
	_, _ = rw.Write([]byte("ok"))
}

// Run starts the configured server. Blocks until ctx is done or a
// termination signal arrives, then shuts the server down gracefully.
func (m *Main) Run(ctx context.Context) error {
	if m.HealthyDeadline == 0 {
		m.HealthyDeadline = 5 * time.Second
	}
	if m.ShutdownTimeout == 0 {
		m.ShutdownTimeout = 10 * time.Second
	}
	gatherer := m.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Handlers go on a private mux so that anything registered on
	// http.DefaultServeMux, such as pprof, is not exposed.
	mux := http.NewServeMux()
	if m.RegisterHandlerFn != nil {
		if err := m.RegisterHandlerFn(mux); err != nil {
			return err
		}
	}
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", m.healthz)

	lis, err := net.Listen("tcp", m.HTTPEndpoint)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go util.AwaitSignal(ctx, cancel)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		klog.Infof("HTTP server starting on %v", lis.Addr())
		var err error
		// Let ServeTLS handle the error case when only one of the flags is set.
		if m.TLSCertFile != "" || m.TLSKeyFile != "" {
			err = srv.ServeTLS(lis, m.TLSCertFile, m.TLSKeyFile)
		} else {
			err = srv.Serve(lis)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		klog.Infof("Stopping server, about to exit")
		sctx, scancel := context.WithTimeout(context.Background(), m.ShutdownTimeout)
		defer scancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	klog.Flush()
	return err
}
