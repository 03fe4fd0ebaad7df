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

// Package testonly holds metric compliance tests shared by every
// monitoring.MetricFactory implementation.
package testonly

import (
	"testing"

	"github.com/google/sparsemerkle/monitoring"
)

var labelCases = []struct {
	suffix     string
	labelNames []string
	labelVals  []string
}{
	{suffix: "0"},
	{suffix: "1", labelNames: []string{"key1"}, labelVals: []string{"val1"}},
	{suffix: "2", labelNames: []string{"key1", "key2"}, labelVals: []string{"val1", "val2"}},
}

// bogus returns vals with one label too many.
func bogus(vals []string) []string {
	return append(append([]string{}, vals...), "bogus")
}

// TestCounter runs a test on a Counter produced from the provided MetricFactory.
func TestCounter(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		name := "test_counter" + tc.suffix
		c := factory.NewCounter(name, "Test only", tc.labelNames...)
		check := func(step string, want float64) {
			t.Helper()
			if got := c.Value(tc.labelVals...); got != want {
				t.Errorf("%s[%v] after %s: Value()=%v, want %v", name, tc.labelVals, step, got, want)
			}
		}
		check("create", 0)
		c.Inc(tc.labelVals...)
		check("Inc", 1)
		c.Add(2.5, tc.labelVals...)
		check("Add", 3.5)

		c.Inc(bogus(tc.labelVals)...)
		c.Add(10, bogus(tc.labelVals)...)
		check("bogus labels", 3.5)
		if got := c.Value(bogus(tc.labelVals)...); got != 0 {
			t.Errorf("%s: Value(bogus)=%v, want 0", name, got)
		}
	}
}

// TestGauge runs a test on a Gauge produced from the provided MetricFactory.
func TestGauge(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		name := "test_gauge" + tc.suffix
		g := factory.NewGauge(name, "Test only", tc.labelNames...)
		check := func(step string, want float64) {
			t.Helper()
			if got := g.Value(tc.labelVals...); got != want {
				t.Errorf("%s[%v] after %s: Value()=%v, want %v", name, tc.labelVals, step, got, want)
			}
		}
		check("create", 0)
		g.Inc(tc.labelVals...)
		check("Inc", 1)
		g.Dec(tc.labelVals...)
		g.Dec(tc.labelVals...)
		check("Dec", -1)
		g.Set(42, tc.labelVals...)
		check("Set", 42)

		g.Inc(bogus(tc.labelVals)...)
		g.Set(120, bogus(tc.labelVals)...)
		check("bogus labels", 42)
	}
}

// TestHistogram runs a test on a Histogram produced from the provided MetricFactory.
func TestHistogram(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		name := "test_histogram" + tc.suffix
		h := factory.NewHistogramWithBuckets(name, "Test only", monitoring.ExpBuckets(1, 2, 4), tc.labelNames...)
		if count, sum := h.Info(tc.labelVals...); count != 0 || sum != 0 {
			t.Errorf("%s: Info()=%d,%v on creation, want 0,0", name, count, sum)
		}
		for _, v := range []float64{1, 2, 3} {
			h.Observe(v, tc.labelVals...)
		}
		if count, sum := h.Info(tc.labelVals...); count != 3 || sum != 6 {
			t.Errorf("%s: Info()=%d,%v, want 3,6", name, count, sum)
		}

		h.Observe(100, bogus(tc.labelVals)...)
		if count, sum := h.Info(bogus(tc.labelVals)...); count != 0 || sum != 0 {
			t.Errorf("%s: Info(bogus)=%d,%v, want 0,0", name, count, sum)
		}
	}
}
