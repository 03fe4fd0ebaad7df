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

package monitoring

import (
	"math"
	"testing"
)

func TestExpBuckets(t *testing.T) {
	got := ExpBuckets(1, 3, 4)
	want := []float64{1, 3, 9, 27}
	if len(got) != len(want) {
		t.Fatalf("ExpBuckets(1, 3, 4) has %d buckets, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("bucket[%d]=%v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuildLatencyBuckets(t *testing.T) {
	b := BuildLatencyBuckets()
	if got, want := len(b), 20; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			t.Errorf("bucket[%d]=%v not above bucket[%d]=%v", i, b[i], i-1, b[i-1])
		}
	}
	if last := b[len(b)-1]; last < 20 || last > 30 {
		t.Errorf("last bucket %v outside [20, 30] seconds", last)
	}
}
