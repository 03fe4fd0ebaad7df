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

package cmd

import (
	"fmt"
	"strings"

	"github.com/google/sparsemerkle"
)

// ParseHashStrategies parses a comma-separated list of hash strategy names.
// Blank entries are skipped and duplicates are dropped.
func ParseHashStrategies(list string) ([]sparsemerkle.HashStrategy, error) {
	var r []sparsemerkle.HashStrategy
	seen := make(map[sparsemerkle.HashStrategy]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := sparsemerkle.ParseHashStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("--hash_strategies: %v", err)
		}
		if !seen[s] {
			seen[s] = true
			r = append(r, s)
		}
	}
	return r, nil
}
