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

// Package sparsemerkle provides common data structures used throughout the
// fixed-depth Merkle tree packages.
package sparsemerkle

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DigestSize is the number of bytes in a Digest.
const DigestSize = 32

// Digest is the output of the tree hash function. Digests are opaque and
// only ever compared for equality.
type Digest [DigestSize]byte

// DigestFromBytes copies b into a Digest. It fails unless b is exactly
// DigestSize bytes long.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("digest has %d bytes, want %d", len(b), DigestSize)
	}
	copy(d[:], b)
	return d, nil
}

// ParseDigest decodes a hex string, with or without a 0x prefix.
func ParseDigest(s string) (Digest, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Digest{}, fmt.Errorf("digest %q: %w", s, err)
	}
	return DigestFromBytes(b)
}

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	v, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// HashStrategy identifies the hash function a tree is built with. Trees
// built with different strategies have unrelated roots.
type HashStrategy int

const (
	UnknownHashStrategy HashStrategy = iota
	// KECCAK256 is the legacy (pre-NIST) Keccak-256 used by the Ethereum
	// beacon chain deposit contract.
	KECCAK256
	SHA256
	SHA512_256
	BLAKE3
)

var strategyNames = map[HashStrategy]string{
	UnknownHashStrategy: "UNKNOWN_HASH_STRATEGY",
	KECCAK256:           "KECCAK256",
	SHA256:              "SHA256",
	SHA512_256:          "SHA512_256",
	BLAKE3:              "BLAKE3",
}

func (s HashStrategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("HashStrategy(%d)", int(s))
}

// ParseHashStrategy returns the strategy with the given name. Matching is
// case-insensitive.
func ParseHashStrategy(name string) (HashStrategy, error) {
	for s, n := range strategyNames {
		if s != UnknownHashStrategy && strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return UnknownHashStrategy, fmt.Errorf("unknown hash strategy %q", name)
}
