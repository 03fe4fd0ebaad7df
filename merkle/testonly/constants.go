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

// Package testonly contains code and data for testing Merkle trees.
package testonly

import "github.com/google/sparsemerkle"

// Vectors holds known answers for one hash strategy. Empty fields are not
// known for that strategy and are skipped by the tests.
type Vectors struct {
	Strategy sparsemerkle.HashStrategy

	// HashEmpty is H("") and HashABC is H("abc").
	HashEmpty, HashABC string

	// EmptyNode1 and EmptyNode31 are the padding digests for levels 1 and 31.
	// Level 0 is always 32 zero bytes.
	EmptyNode1, EmptyNode31 string

	// RootA is the root of a tree built from the single item "a".
	RootA string
	// RootABC is the root of a tree built from items "a", "b", "c", and
	// LevelOneABC is the layer just above its leaves.
	RootABC     string
	LevelOneABC [2]string
	// RootHelloWorld is the root of a tree built from "hello", "world".
	RootHelloWorld string
}

// KnownVectors returns the vectors for every strategy with a bundled
// implementation.
func KnownVectors() []Vectors {
	return []Vectors{
		{
			Strategy:       sparsemerkle.KECCAK256,
			HashEmpty:      "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
			HashABC:        "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
			EmptyNode1:     "ad3228b676f7d3cd4284a5443f17f1962b36e491b30a40b2405849e597ba5fb5",
			EmptyNode31:    "8448818bb4ae4562849e949e17ac16e0be16688e156b5cf15e098c627c0056a9",
			RootA:          "49b124eee3da5fa232853047f41abf1b19be4eaa2b2f66daa2647da4d9f816f5",
			RootABC:        "666ad2cc1613fdd1ee86dfa1d37a897808c45c2742d34004470bfd94a075a580",
			LevelOneABC:    [2]string{"805b21d846b189efaeb0377d6bb0d201b3872a363e607c25088f025b0c6ae1f8", "10007607abef1142095ae99c25e769f2b53c8a747f9811e17e28e19e731f9593"},
			RootHelloWorld: "a715b448ba3f7971c3777c419cad855ff9112e8d03bc42b187da56fda779653b",
		},
		{
			Strategy:       sparsemerkle.SHA256,
			HashEmpty:      "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			HashABC:        "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			EmptyNode1:     "f5a5fd42d16a20302798ef6ed309979b43003d2320d9f0e8ea9831a92759fb4b",
			EmptyNode31:    "985e929f70af28d0bdd1a90a808f977f597c7c778c489e98d3bd8910d31ac0f7",
			RootA:          "805be27851f5e0e8b1fcef52ca7810d808ab6c585336ea6e084b66dc90c570ed",
			RootABC:        "db0a7f95a38ed1120e017c0643ac0d4fa94e598ea86048fdddbc6ddac345daf0",
			LevelOneABC:    [2]string{"e5a01fee14e0ed5c48714f22180f25ad8365b53f9779f79dc4a3d7e93963f94a", "898184a7d6a032c38817722d914121832084222eb30943d7ae635fc479d1a859"},
			RootHelloWorld: "13555f7d39719ce13a98543941120a14de9692e78fc8b0540d2fdc78eebfd54a",
		},
		{
			Strategy:       sparsemerkle.SHA512_256,
			HashEmpty:      "c672b8d1ef56ed28ab87c3622c5114069bdd3ad7b8f9737498d0c01ecef0967a",
			HashABC:        "53048e2681941ef99b2e29b76b4c7dabe4c2d0c634fc6d46e0e2f13107e7af23",
			EmptyNode1:     "8aeecfa0b9f2ac7818863b1362241e4f32d06b100ae9d1c0fbcc4ed61b91b17a",
			EmptyNode31:    "acfcfeb5369bd01bc39c1ef3f58e96a5a9e254096e4d50f092f28dddad104b8b",
			RootA:          "95a28758b4c335f99431d1da5360a769d06dc98738f6044337b2c7c05dc1d3b0",
			RootABC:        "00b680657c44f7ae251e2a8a794f52310ec7d4751799bae98f3fc4785f227686",
			LevelOneABC:    [2]string{"5646d8260c0dd3bbd9debf2547a03a0d8e8376533e9b8a6816d1ae528ca57653", "00b9a2a861bb8f6f082d34225f32367b882b7d1143ac7084fd4f886ace0ebc79"},
			RootHelloWorld: "ada59ff9caaf1475fb87870c4e3284f3d3472c69656c0151d3a64c8b469c7b6b",
		},
		{
			Strategy:  sparsemerkle.BLAKE3,
			HashEmpty: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
			HashABC:   "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85",
		},
	}
}

// VectorsFor returns the known vectors for s. It panics if there are none.
func VectorsFor(s sparsemerkle.HashStrategy) Vectors {
	for _, v := range KnownVectors() {
		if v.Strategy == s {
			return v
		}
	}
	panic("no vectors for " + s.String())
}
