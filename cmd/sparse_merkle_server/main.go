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

// The sparse_merkle_server binary serves the Merkle tree HTTP API.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/cmd"
	"github.com/google/sparsemerkle/cmd/internal/serverutil"
	"github.com/google/sparsemerkle/merkle/sparse"
	"github.com/google/sparsemerkle/monitoring/prometheus"
	"github.com/google/sparsemerkle/server"
	"k8s.io/klog/v2"

	// Register hashers.
	_ "github.com/google/sparsemerkle/merkle/blake3"
	_ "github.com/google/sparsemerkle/merkle/keccak"
	_ "github.com/google/sparsemerkle/merkle/sha2"
)

var (
	httpEndpoint    = flag.String("http_endpoint", "localhost:8091", "Endpoint for HTTP requests (host:port)")
	healthzTimeout  = flag.Duration("healthz_timeout", time.Second*5, "Timeout used during healthz checks")
	shutdownTimeout = flag.Duration("shutdown_timeout", time.Second*10, "Time allowed for in-flight requests to finish on shutdown")
	tlsCertFile     = flag.String("tls_cert_file", "", "Path to the TLS server certificate. If unset, the server will use unsecured connections.")
	tlsKeyFile      = flag.String("tls_key_file", "", "Path to the TLS server key. If unset, the server will use unsecured connections.")

	hashStrategy      = flag.String("hash_strategy", sparse.DefaultStrategy.String(), "Hash strategy of requests that do not name one")
	hashStrategies    = flag.String("hash_strategies", "SHA256,SHA512_256,BLAKE3", "Comma-separated list of further hash strategies to serve")
	maxBodyBytes      = flag.Int64("max_body_bytes", 64<<20, "Maximum size of a request body in bytes")
	maxChecks         = flag.Int("max_checks", 1024, "Maximum number of proofs in one verify request")
	verifyParallelism = flag.Int("verify_parallelism", 8, "Number of proofs of one verify request checked concurrently")
	statsPrefix       = flag.String("stats_prefix", "sparse_merkle_", "Prefix of exported metric names")

	configFile = flag.String("config", "", "YAML config file containing flags, file contents can be overridden by command line flags")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if *configFile != "" {
		if err := cmd.ParseFlagFile(*configFile); err != nil {
			klog.Exitf("Failed to load flags from config file %q: %s", *configFile, err)
		}
	}

	def, err := sparsemerkle.ParseHashStrategy(*hashStrategy)
	if err != nil {
		klog.Exitf("--hash_strategy: %v", err)
	}
	strategies, err := cmd.ParseHashStrategies(*hashStrategies)
	if err != nil {
		klog.Exitf("%v", err)
	}

	mf := prometheus.MetricFactory{Prefix: *statsPrefix}
	// Must run before any builder is created so that tree metrics are
	// exported.
	sparse.InitMetrics(mf)

	s, err := server.NewMerkleServer(server.Options{
		DefaultStrategy:   def,
		Strategies:        strategies,
		MetricFactory:     mf,
		MaxBodyBytes:      *maxBodyBytes,
		MaxChecks:         *maxChecks,
		VerifyParallelism: *verifyParallelism,
	})
	if err != nil {
		klog.Exitf("Failed to create server: %v", err)
	}
	klog.Infof("Serving hash strategies %v (default %v)", append([]sparsemerkle.HashStrategy{def}, strategies...), def)

	m := serverutil.Main{
		HTTPEndpoint:      *httpEndpoint,
		TLSCertFile:       *tlsCertFile,
		TLSKeyFile:        *tlsKeyFile,
		RegisterHandlerFn: s.RegisterHandlers,
		IsHealthy:         s.IsHealthy,
		HealthyDeadline:   *healthzTimeout,
		ShutdownTimeout:   *shutdownTimeout,
	}
	if err := m.Run(context.Background()); err != nil {
		klog.Exitf("Server exited with error: %v", err)
	}
}
