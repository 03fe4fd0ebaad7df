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

// The sparse_merkle binary builds fixed-depth Merkle trees, prints their
// roots, layers and inclusion proofs, and verifies proofs.
//
// Usage:
//
//	sparse_merkle [flags] root|tree|proof|verify
//
// root, tree and proof read the leaves from --input, one per line: raw items
// to be hashed with --format=items, or hex digests with --format=leaves.
// With --format=items every line is an item, so a blank line is an empty
// item and changes the root; with --format=leaves blank lines are skipped.
// verify reads a JSON proof, as printed by proof, and exits with status 1 if
// it does not hold.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/cmd"
	"github.com/google/sparsemerkle/merkle/sparse"
	"k8s.io/klog/v2"

	// Register hashers.
	_ "github.com/google/sparsemerkle/merkle/blake3"
	_ "github.com/google/sparsemerkle/merkle/keccak"
	_ "github.com/google/sparsemerkle/merkle/sha2"
)

var (
	hashStrategy = flag.String("hash_strategy", sparse.DefaultStrategy.String(), "Hash strategy: KECCAK256, SHA256, SHA512_256 or BLAKE3")
	input        = flag.String("input", "-", "File to read, - for stdin")
	format       = flag.String("format", formatItems, "Input format of root, tree and proof: items (one item per line, blank lines are empty items) or leaves (one hex digest per line, blank lines skipped)")
	index        = flag.Uint64("index", 0, "Index of the leaf to prove")
	configFile   = flag.String("config", "", "YAML config file containing flags, file contents can be overridden by command line flags")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] root|tree|proof|verify\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	if *configFile != "" {
		if err := cmd.ParseFlagFile(*configFile); err != nil {
			klog.Exitf("Failed to load flags from config file %q: %s", *configFile, err)
		}
	}
	if flag.NArg() != 1 {
		flag.Usage()
		klog.Flush()
		os.Exit(2)
	}

	s, err := sparsemerkle.ParseHashStrategy(*hashStrategy)
	if err != nil {
		klog.Exitf("--hash_strategy: %v", err)
	}

	var in io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			klog.Exitf("Failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	ok, err := run(config{strategy: s, format: *format, index: *index}, flag.Arg(0), in, os.Stdout)
	if err != nil {
		klog.Exitf("%s: %v", flag.Arg(0), err)
	}
	if !ok {
		klog.Flush()
		os.Exit(1)
	}
}
