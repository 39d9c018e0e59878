// Package metrics exposes the Prometheus collectors of the blog.
package metrics

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"polyglot-blog-be/content"
)

const namespace = "blog"

var (
	RenderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Content blocks rendered for readers",
		},
		[]string{"locale", "fallback"},
	)

	RenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent sanitizing one content block",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
	)

	PreviewTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_total",
			Help:      "Editor previews rendered",
		},
	)

	ContentTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_truncated_total",
			Help:      "Content blocks cut to the maximum input size before sanitizing",
		},
	)
)

var registerOnce sync.Once

// Register adds the blog collectors to the default registry. A non-nil db
// also exports its connection pool statistics.
func Register(db *sql.DB) {
	registerOnce.Do(func() {
		prometheus.MustRegister(RenderTotal, RenderDuration, PreviewTotal, ContentTruncatedTotal)
		if db != nil {
			prometheus.MustRegister(collectors.NewDBStatsCollector(db, "blog"))
		}
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRender records one rendered block that took d.
func ObserveRender(r content.Rendered, d time.Duration) {
	fallback := "false"
	if r.Fallback {
		fallback = "true"
	}
	RenderTotal.WithLabelValues(r.Locale.String(), fallback).Inc()
	RenderDuration.Observe(d.Seconds())
	if r.Truncated {
		ContentTruncatedTotal.Inc()
	}
}
