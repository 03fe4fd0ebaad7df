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

// Package blake3 implements a hashers.Hasher using BLAKE3 with its default
// 32 byte output.
package blake3

import (
	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
	zblake3 "github.com/zeebo/blake3"
)

func init() {
	hashers.Register(sparsemerkle.BLAKE3, Default)
}

// Default is the shared BLAKE3 hasher.
var Default = Hasher{}

// Hasher computes unkeyed BLAKE3 digests.
type Hasher struct{}

// Hash returns BLAKE3(data).
func (Hasher) Hash(data []byte) []byte {
	d := zblake3.Sum256(data)
	return d[:]
}

// HashChildren returns BLAKE3(l || r).
func (Hasher) HashChildren(l, r []byte) []byte {
	h := zblake3.New()
	h.Write(l)
	h.Write(r)
	return h.Sum(nil)
}

// Size returns the number of bytes in output hashes.
func (Hasher) Size() int {
	return 32
}
