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
	"errors"
	"fmt"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
	"github.com/google/sparsemerkle/monitoring"
	"github.com/google/sparsemerkle/util/clock"
)

// Options configures a Builder or Verifier.
type Options struct {
	// Strategy labels metrics. NewBuilderForStrategy and
	// NewVerifierForStrategy also use it to look up the hasher.
	Strategy sparsemerkle.HashStrategy
	// MetricFactory is passed to InitMetrics. Nil means inert metrics.
	MetricFactory monitoring.MetricFactory
	// TimeSource measures build latency. Nil means clock.System.
	TimeSource clock.TimeSource
	// ParallelHashThreshold is the item count from which BuildFromItems
	// hashes items on several goroutines. Zero means a sensible default and
	// a negative value disables parallel hashing.
	ParallelHashThreshold int
}

// nodeHasher adapts a hashers.Hasher to fixed-size digests.
type nodeHasher struct {
	h     hashers.Hasher
	label string
}

func newNodeHasher(h hashers.Hasher, s sparsemerkle.HashStrategy) (nodeHasher, error) {
	if h == nil {
		return nodeHasher{}, errors.New("nil hasher")
	}
	if got, want := h.Size(), sparsemerkle.DigestSize; got != want {
		return nodeHasher{}, fmt.Errorf("hasher produces %d byte digests, want %d", got, want)
	}
	return nodeHasher{h: h, label: s.String()}, nil
}

// hashItem returns H(item).
func (n nodeHasher) hashItem(item []byte) sparsemerkle.Digest {
	var d sparsemerkle.Digest
	copy(d[:], n.h.Hash(item))
	return d
}

// hashChildren returns H(l || r).
func (n nodeHasher) hashChildren(l, r sparsemerkle.Digest) sparsemerkle.Digest {
	var d sparsemerkle.Digest
	copy(d[:], n.h.HashChildren(l[:], r[:]))
	return d
}
