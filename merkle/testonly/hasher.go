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
	"bytes"
	"sync"
	"testing"

	"github.com/google/sparsemerkle/merkle/hashers"
	"github.com/google/sparsemerkle/testonly"
)

var hex = testonly.MustHexDecode

// TestHasher runs the checks every hashers.Hasher implementation must pass,
// using the known answers in v.
func TestHasher(t *testing.T, h hashers.Hasher, v Vectors) {
	t.Helper()

	if got, want := h.Size(), 32; got != want {
		t.Fatalf("Size()=%d, want %d", got, want)
	}

	t.Run("known answers", func(t *testing.T) {
		for _, tc := range []struct {
			desc string
			in   string
			want string
		}{
			{desc: "empty", in: "", want: v.HashEmpty},
			{desc: "abc", in: "abc", want: v.HashABC},
		} {
			if tc.want == "" {
				continue
			}
			if got, want := h.Hash([]byte(tc.in)), hex(tc.want); !bytes.Equal(got, want) {
				t.Errorf("Hash(%q)=%x, want %x", tc.in, got, want)
			}
		}
	})

	t.Run("children are concatenated", func(t *testing.T) {
		l, r := h.Hash([]byte("left")), h.Hash([]byte("right"))
		want := h.Hash(append(append([]byte{}, l...), r...))
		if got := h.HashChildren(l, r); !bytes.Equal(got, want) {
			t.Errorf("HashChildren(l, r)=%x, want H(l||r)=%x", got, want)
		}
		if got := h.HashChildren(r, l); bytes.Equal(got, want) {
			t.Errorf("HashChildren does not depend on the order of its arguments")
		}
	})

	t.Run("inputs are not retained", func(t *testing.T) {
		l, r := bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32)
		first := h.HashChildren(l, r)
		l[0], r[0] = 9, 9
		second := h.HashChildren(bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32))
		if !bytes.Equal(first, second) {
			t.Errorf("HashChildren gave %x then %x for equal inputs", first, second)
		}
	})

	t.Run("concurrent use", func(t *testing.T) {
		want := h.Hash([]byte("concurrent"))
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if got := h.Hash([]byte("concurrent")); !bytes.Equal(got, want) {
					t.Errorf("concurrent Hash()=%x, want %x", got, want)
				}
			}()
		}
		wg.Wait()
	})
}
