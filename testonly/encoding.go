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

package testonly

import (
	"encoding/hex"

	"github.com/google/sparsemerkle"
)

// MustHexDecode decodes its input string from hex and panics if this fails
func MustHexDecode(b string) []byte {
	r, err := hex.DecodeString(b)
	if err != nil {
		panic(err)
	}
	return r
}

// MustDigest decodes a 64 character hex string into a Digest and panics if
// this fails.
func MustDigest(b string) sparsemerkle.Digest {
	d, err := sparsemerkle.DigestFromBytes(MustHexDecode(b))
	if err != nil {
		panic(err)
	}
	return d
}
