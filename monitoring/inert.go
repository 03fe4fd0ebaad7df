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
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// InertMetricFactory creates metrics that keep their values in memory and
// export nothing. It is the default when no backend is configured.
type InertMetricFactory struct{}

// NewCounter creates a new inert Counter.
func (InertMetricFactory) NewCounter(name, help string, labelNames ...string) Counter {
	return &InertFloat{series: series{name: name, labelCount: len(labelNames)}}
}

// NewGauge creates a new inert Gauge.
func (InertMetricFactory) NewGauge(name, help string, labelNames ...string) Gauge {
	return &InertFloat{series: series{name: name, labelCount: len(labelNames)}}
}

// NewHistogram creates a new inert Histogram.
func (InertMetricFactory) NewHistogram(name, help string, labelNames ...string) Histogram {
	return &InertDistribution{series: series{name: name, labelCount: len(labelNames)}}
}

// NewHistogramWithBuckets creates a new inert Histogram; buckets are ignored.
func (imf InertMetricFactory) NewHistogramWithBuckets(name, help string, _ []float64, labelNames ...string) Histogram {
	return imf.NewHistogram(name, help, labelNames...)
}

// series guards per-label-set state for one metric.
type series struct {
	name       string
	labelCount int
	mu         sync.Mutex
}

// locked runs fn with the key for labelVals while holding the lock. It
// returns false, after logging, if the label count is wrong.
func (s *series) locked(labelVals []string, fn func(key string)) bool {
	if len(labelVals) != s.labelCount {
		klog.Errorf("%s: invalid label count %d; want %d", s.name, len(labelVals), s.labelCount)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(strings.Join(labelVals, "|"))
	return true
}

// InertFloat is an internal-only implementation of both the Counter and
// Gauge interfaces.
type InertFloat struct {
	series
	vals map[string]float64
}

// Inc adds 1 to the value.
func (m *InertFloat) Inc(labelVals ...string) {
	m.Add(1.0, labelVals...)
}

// Dec subtracts 1 from the value.
func (m *InertFloat) Dec(labelVals ...string) {
	m.Add(-1.0, labelVals...)
}

// Add adds the given amount to the value.
func (m *InertFloat) Add(val float64, labelVals ...string) {
	m.locked(labelVals, func(key string) {
		if m.vals == nil {
			m.vals = make(map[string]float64)
		}
		m.vals[key] += val
	})
}

// Set sets the value.
func (m *InertFloat) Set(val float64, labelVals ...string) {
	m.locked(labelVals, func(key string) {
		if m.vals == nil {
			m.vals = make(map[string]float64)
		}
		m.vals[key] = val
	})
}

// Value returns the current value.
func (m *InertFloat) Value(labelVals ...string) float64 {
	var v float64
	m.locked(labelVals, func(key string) { v = m.vals[key] })
	return v
}

// InertDistribution is an internal-only implementation of the Histogram
// interface.
type InertDistribution struct {
	series
	counts map[string]uint64
	sums   map[string]float64
}

// Observe adds a single observation.
func (m *InertDistribution) Observe(val float64, labelVals ...string) {
	m.locked(labelVals, func(key string) {
		if m.counts == nil {
			m.counts = make(map[string]uint64)
			m.sums = make(map[string]float64)
		}
		m.counts[key]++
		m.sums[key] += val
	})
}

// Info returns the count and sum of observations.
func (m *InertDistribution) Info(labelVals ...string) (uint64, float64) {
	var count uint64
	var sum float64
	m.locked(labelVals, func(key string) {
		count, sum = m.counts[key], m.sums[key]
	})
	return count, sum
}
