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

// Package hashers defines the hash function abstraction used to build and
// verify fixed-depth Merkle trees, and a registry of implementations keyed
// by sparsemerkle.HashStrategy.
package hashers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/sparsemerkle"
)

// Hasher provides the one-way function used for leaves and interior nodes.
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Hash returns the digest of data. Items are turned into leaves with it.
	Hash(data []byte) []byte
	// HashChildren returns the digest of l || r. The order of the arguments
	// is significant.
	HashChildren(l, r []byte) []byte
	// Size is the number of bytes in the output of the hash function.
	Size() int
}

var (
	mu      sync.RWMutex
	hashers = make(map[sparsemerkle.HashStrategy]Hasher)
)

// Register makes a Hasher available under the given strategy. It panics if
// the strategy is unknown or already registered; it is meant to be called
// from init functions.
func Register(s sparsemerkle.HashStrategy, h Hasher) {
	mu.Lock()
	defer mu.Unlock()
	if s == sparsemerkle.UnknownHashStrategy {
		panic(fmt.Sprintf("Register(%s) of unknown hasher", s))
	}
	if hashers[s] != nil {
		panic(fmt.Sprintf("%v already registered as a Hasher", s))
	}
	hashers[s] = h
}

// New returns the Hasher registered for the strategy.
func New(s sparsemerkle.HashStrategy) (Hasher, error) {
	mu.RLock()
	defer mu.RUnlock()
	if h := hashers[s]; h != nil {
		return h, nil
	}
	return nil, fmt.Errorf("Hasher(%s) is an unknown hasher", s)
}

// Registered lists the registered strategies in ascending order.
func Registered() []sparsemerkle.HashStrategy {
	mu.RLock()
	defer mu.RUnlock()
	r := make([]sparsemerkle.HashStrategy, 0, len(hashers))
	for s := range hashers {
		r = append(r, s)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}
