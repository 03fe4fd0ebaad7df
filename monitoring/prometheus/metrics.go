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

// Package prometheus provides a Prometheus-based implementation of the
// MetricFactory abstraction.
package prometheus

import (
	"github.com/google/sparsemerkle/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/klog/v2"
)

// MetricFactory allows the creation of Prometheus-based metrics.
type MetricFactory struct {
	Prefix string
	// Registerer receives every metric created by the factory. Nil means
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

func (pmf MetricFactory) mustRegister(c prometheus.Collector) {
	r := pmf.Registerer
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	r.MustRegister(c)
}

// NewCounter creates a new Counter object backed by Prometheus.
func (pmf MetricFactory) NewCounter(name, help string, labelNames ...string) monitoring.Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: pmf.Prefix + name, Help: help}, labelNames)
	pmf.mustRegister(vec)
	return &Counter{name: pmf.Prefix + name, vec: vec}
}

// NewGauge creates a new Gauge object backed by Prometheus.
func (pmf MetricFactory) NewGauge(name, help string, labelNames ...string) monitoring.Gauge {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: pmf.Prefix + name, Help: help}, labelNames)
	pmf.mustRegister(vec)
	return &Gauge{name: pmf.Prefix + name, vec: vec}
}

// NewHistogram creates a new Histogram object backed by Prometheus, using
// the default Prometheus buckets.
func (pmf MetricFactory) NewHistogram(name, help string, labelNames ...string) monitoring.Histogram {
	return pmf.NewHistogramWithBuckets(name, help, prometheus.DefBuckets, labelNames...)
}

// NewHistogramWithBuckets creates a new Histogram object backed by
// Prometheus with the given bucket upper limits.
func (pmf MetricFactory) NewHistogramWithBuckets(name, help string, buckets []float64, labelNames ...string) monitoring.Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: pmf.Prefix + name, Help: help, Buckets: buckets}, labelNames)
	pmf.mustRegister(vec)
	return &Histogram{name: pmf.Prefix + name, vec: vec}
}

// read snapshots m into a protobuf, logging on failure.
func read(name string, m prometheus.Metric) (*dto.Metric, bool) {
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		klog.Errorf("%s: failed to Write metric: %v", name, err)
		return nil, false
	}
	return &pb, true
}

// Counter is a wrapper around a Prometheus CounterVec.
type Counter struct {
	name string
	vec  *prometheus.CounterVec
}

func (m *Counter) with(labelVals []string) prometheus.Counter {
	c, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("%s: %v", m.name, err)
		return nil
	}
	return c
}

// Inc adds 1 to a counter.
func (m *Counter) Inc(labelVals ...string) {
	if c := m.with(labelVals); c != nil {
		c.Inc()
	}
}

// Add adds the given amount to a counter.
func (m *Counter) Add(val float64, labelVals ...string) {
	if c := m.with(labelVals); c != nil {
		c.Add(val)
	}
}

// Value returns the current amount of a counter.
func (m *Counter) Value(labelVals ...string) float64 {
	c := m.with(labelVals)
	if c == nil {
		return 0
	}
	pb, ok := read(m.name, c)
	if !ok {
		return 0
	}
	return pb.GetCounter().GetValue()
}

// Gauge is a wrapper around a Prometheus GaugeVec.
type Gauge struct {
	name string
	vec  *prometheus.GaugeVec
}

func (m *Gauge) with(labelVals []string) prometheus.Gauge {
	g, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("%s: %v", m.name, err)
		return nil
	}
	return g
}

// Inc adds 1 to a gauge.
func (m *Gauge) Inc(labelVals ...string) {
	if g := m.with(labelVals); g != nil {
		g.Inc()
	}
}

// Dec subtracts 1 from a gauge.
func (m *Gauge) Dec(labelVals ...string) {
	if g := m.with(labelVals); g != nil {
		g.Dec()
	}
}

// Set sets the value of a gauge.
func (m *Gauge) Set(val float64, labelVals ...string) {
	if g := m.with(labelVals); g != nil {
		g.Set(val)
	}
}

// Value returns the current amount of a gauge.
func (m *Gauge) Value(labelVals ...string) float64 {
	g := m.with(labelVals)
	if g == nil {
		return 0
	}
	pb, ok := read(m.name, g)
	if !ok {
		return 0
	}
	return pb.GetGauge().GetValue()
}

// Histogram is a wrapper around a Prometheus HistogramVec.
type Histogram struct {
	name string
	vec  *prometheus.HistogramVec
}

func (m *Histogram) with(labelVals []string) prometheus.Observer {
	o, err := m.vec.GetMetricWithLabelValues(labelVals...)
	if err != nil {
		klog.Errorf("%s: %v", m.name, err)
		return nil
	}
	return o
}

// Observe adds a single observation to the histogram.
func (m *Histogram) Observe(val float64, labelVals ...string) {
	if o := m.with(labelVals); o != nil {
		o.Observe(val)
	}
}

// Info returns the count and sum of observations for the histogram.
func (m *Histogram) Info(labelVals ...string) (uint64, float64) {
	o := m.with(labelVals)
	if o == nil {
		return 0, 0
	}
	pb, ok := read(m.name, o.(prometheus.Metric))
	if !ok {
		return 0, 0
	}
	h := pb.GetHistogram()
	return h.GetSampleCount(), h.GetSampleSum()
}
