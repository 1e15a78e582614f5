// Package telemetry exposes transition and frame metrics for local
// performance monitoring.
package telemetry

import (
	"time"

	"github.com/milk9111/cyberfolio/transition"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cyberfolio"

// Metrics collects transition lifecycle counters and frame timings. It
// implements transition.Observer.
type Metrics struct {
	registry *prometheus.Registry

	started   *prometheus.CounterVec
	completed *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	duration  *prometheus.HistogramVec

	frameSeconds prometheus.Histogram
	tps          prometheus.Gauge
	progress     prometheus.Gauge
	loading      prometheus.Gauge
	fade         prometheus.Gauge
	inFlight     prometheus.Gauge
}

var _ transition.Observer = (*Metrics)(nil)

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_started_total",
				Help:      "Transitions started, by target section.",
			},
			[]string{"section", "easing"},
		),
		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_completed_total",
				Help:      "Transitions completed, by section.",
			},
			[]string{"section"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_dropped_total",
				Help:      "Navigation requests that did not start a transition.",
			},
			[]string{"section", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transition_duration_seconds",
				Help:      "Render-clock time from first driven frame to completion.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 2.5, 3, 4, 6},
			},
			[]string{"section"},
		),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time between update ticks.",
			Buckets:   []float64{0.004, 0.008, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25},
		}),
		tps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ticks_per_second",
			Help:      "Current update rate as reported by ebiten.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_progress",
			Help:      "Eased progress of the active transition.",
		}),
		loading: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_loading_progress",
			Help:      "Simulated loading progress of the active transition.",
		}),
		fade: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_fade_opacity",
			Help:      "Current fade overlay opacity.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_in_flight",
			Help:      "1 while a transition is running.",
		}),
	}

	m.registry.MustRegister(
		m.started, m.completed, m.dropped, m.duration,
		m.frameSeconds, m.tps, m.progress, m.loading, m.fade, m.inFlight,
	)
	return m
}

// Registry is the gatherer served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) TransitionStarted(_ string, _, to transition.Section, cfg transition.Config) {
	m.started.WithLabelValues(to.String(), cfg.Easing).Inc()
}

func (m *Metrics) TransitionCompleted(_ string, to transition.Section, elapsed time.Duration) {
	m.completed.WithLabelValues(to.String()).Inc()
	m.duration.WithLabelValues(to.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) TransitionDropped(to transition.Section, reason transition.DropReason) {
	m.dropped.WithLabelValues(to.String(), string(reason)).Inc()
}

// ObserveFrame records one update tick.
func (m *Metrics) ObserveFrame(dt time.Duration, tps float64) {
	if dt > 0 {
		m.frameSeconds.Observe(dt.Seconds())
	}
	m.tps.Set(tps)
}

// ObserveState mirrors a state snapshot into gauges.
func (m *Metrics) ObserveState(s transition.State) {
	m.progress.Set(s.Progress)
	m.loading.Set(s.LoadingProgress)
	m.fade.Set(s.FadeOpacity)
	if s.IsTransitioning {
		m.inFlight.Set(1)
	} else {
		m.inFlight.Set(0)
	}
}
