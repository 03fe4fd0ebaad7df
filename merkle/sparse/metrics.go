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

package sparse

import (
	"sync"

	"github.com/google/sparsemerkle/monitoring"
)

const (
	resultValid     = "valid"
	resultInvalid   = "invalid"
	resultMalformed = "malformed"
)

var (
	metricsOnce    sync.Once
	treesBuilt     monitoring.Counter
	leavesHashed   monitoring.Counter
	buildLatency   monitoring.Histogram
	proofsVerified monitoring.Counter
)

// InitMetrics creates the package metrics with mf, or with an inert factory
// if mf is nil. Only the first call has any effect; NewBuilder and
// NewVerifier call it too, so binaries that export metrics should call it
// before creating either.
func InitMetrics(mf monitoring.MetricFactory) {
	metricsOnce.Do(func() {
		if mf == nil {
			mf = monitoring.InertMetricFactory{}
		}
		treesBuilt = mf.NewCounter("trees_built", "Number of Merkle trees built", monitoring.HashStrategyLabel)
		leavesHashed = mf.NewCounter("items_hashed", "Number of items hashed into leaves", monitoring.HashStrategyLabel)
		buildLatency = mf.NewHistogramWithBuckets("build_latency_seconds", "Latency of building a Merkle tree from its leaves", monitoring.BuildLatencyBuckets(), monitoring.HashStrategyLabel)
		proofsVerified = mf.NewCounter("proofs_verified", "Number of inclusion proofs checked, by result", monitoring.HashStrategyLabel, monitoring.ResultLabel)
	})
}
