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

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/sparse"
	"github.com/google/sparsemerkle/server"
	"k8s.io/klog/v2"
)

const (
	formatItems  = "items"
	formatLeaves = "leaves"

	maxLineBytes = 1 << 20
)

type config struct {
	strategy sparsemerkle.HashStrategy
	format   string
	index    uint64
}

// run executes command and reports whether it succeeded. Only verify can
// fail without an error.
func run(cfg config, command string, in io.Reader, out io.Writer) (bool, error) {
	switch command {
	case "root", "tree", "proof":
	case "verify":
		return verify(cfg, in, out)
	default:
		return false, fmt.Errorf("unknown command %q", command)
	}

	b, err := sparse.NewBuilderForStrategy(cfg.strategy, sparse.Options{Strategy: cfg.strategy})
	if err != nil {
		return false, err
	}
	t, err := buildTree(b, cfg.format, in)
	if err != nil {
		return false, err
	}
	klog.V(1).Infof("Built %v tree with %d leaves", cfg.strategy, len(t.Leaves()))

	switch command {
	case "root":
		_, err = fmt.Fprintln(out, t.Root())
	case "tree":
		err = printTree(t, out)
	case "proof":
		err = printProof(cfg, t, out)
	}
	return err == nil, err
}

// buildTree reads one leaf or item per line from in.
func buildTree(b *sparse.Builder, format string, in io.Reader) (sparse.Tree, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	switch format {
	case formatItems:
		// Blank lines are empty items.
		var items [][]byte
		for sc.Scan() {
			items = append(items, []byte(strings.TrimSuffix(sc.Text(), "\r")))
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return b.BuildFromItems(items)
	case formatLeaves:
		var leaves []sparsemerkle.Digest
		for line := 1; sc.Scan(); line++ {
			text := strings.TrimSpace(sc.Text())
			if text == "" {
				continue
			}
			d, err := sparsemerkle.ParseDigest(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			leaves = append(leaves, d)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return b.BuildFromLeaves(leaves)
	default:
		return nil, fmt.Errorf("unknown --format %q", format)
	}
}

// printTree writes one line per layer, from the leaves up to the root.
func printTree(t sparse.Tree, out io.Writer) error {
	w := bufio.NewWriter(out)
	for i := len(t) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%d:", len(t)-1-i)
		for _, d := range t[i] {
			fmt.Fprintf(w, " %s", d)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func printProof(cfg config, t sparse.Tree, out io.Writer) error {
	proof, err := t.Proof(cfg.index)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(server.ProofResponse{
		HashStrategy: cfg.strategy.String(),
		Root:         t.Root(),
		Index:        cfg.index,
		Leaf:         t.Leaves()[cfg.index],
		Proof:        proof,
	})
}

// verify checks a proof in the format printed by printProof. The proof's
// own hash_strategy, if present, overrides cfg.
func verify(cfg config, in io.Reader, out io.Writer) (bool, error) {
	var p server.ProofResponse
	if err := json.NewDecoder(in).Decode(&p); err != nil {
		return false, fmt.Errorf("reading proof: %v", err)
	}
	s := cfg.strategy
	if p.HashStrategy != "" {
		var err error
		if s, err = sparsemerkle.ParseHashStrategy(p.HashStrategy); err != nil {
			return false, err
		}
	}
	v, err := sparse.NewVerifierForStrategy(s, sparse.Options{Strategy: s})
	if err != nil {
		return false, err
	}
	ok, err := v.Verify(p.Root, p.Leaf, p.Index, p.Proof)
	if err != nil {
		return false, err
	}
	if ok {
		_, err = fmt.Fprintln(out, "valid")
	} else {
		_, err = fmt.Fprintln(out, "invalid")
	}
	return ok, err
}
