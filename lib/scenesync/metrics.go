// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenesync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collection labels.
const (
	CollectionAgents     = "agents"
	CollectionAreas      = "areas"
	CollectionStructures = "structures"
)

// Metrics counts fingerprint checks and the resyncs they trigger. A
// nil *Metrics records nothing.
type Metrics struct {
	checks   *prometheus.CounterVec
	resyncs  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the sync metrics on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldmap_sync_checks_total",
			Help: "Store notifications examined, by collection",
		}, []string{"collection"}),
		resyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldmap_sync_resyncs_total",
			Help: "Resyncs run because a collection's fingerprint changed",
		}, []string{"collection"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldmap_sync_resync_duration_seconds",
			Help:    "Time spent in a collection resync",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12), // 50us to ~100ms
		}, []string{"collection"}),
	}
}

func (metrics *Metrics) observeCheck(collection string) {
	if metrics == nil {
		return
	}
	metrics.checks.WithLabelValues(collection).Inc()
}

func (metrics *Metrics) observeResync(collection string, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.resyncs.WithLabelValues(collection).Inc()
	metrics.duration.WithLabelValues(collection).Observe(elapsed.Seconds())
}
