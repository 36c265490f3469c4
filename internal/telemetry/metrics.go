package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts drawer transitions on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	commands        *prometheus.CounterVec
	gestureCommits  *prometheus.CounterVec
	backdropTaps    prometheus.Counter
	interruptions   prometheus.Counter
	releaseVelocity prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slidemenu_commands_total",
			Help: "Present, dismiss and toggle commands received.",
		}, []string{"command"}),
		gestureCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slidemenu_gesture_commits_total",
			Help: "Pan releases by the edge they settled on.",
		}, []string{"target"}),
		backdropTaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slidemenu_backdrop_taps_total",
			Help: "Backdrop touches that dismissed the menu.",
		}),
		interruptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slidemenu_interruptions_total",
			Help: "Transitions that preempted a running animation.",
		}),
		releaseVelocity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slidemenu_release_velocity",
			Help:    "Absolute horizontal pan velocity at release, cells per second.",
			Buckets: []float64{0, 10, 25, 50, 100, 200, 400, 800},
		}),
	}
	m.registry.MustRegister(m.commands, m.gestureCommits, m.backdropTaps, m.interruptions, m.releaseVelocity)
	return m
}

func (m *Metrics) Command(name string) {
	m.commands.WithLabelValues(name).Inc()
}

func (m *Metrics) GestureCommit(target float64, velocity float64) {
	m.gestureCommits.WithLabelValues(strconv.FormatFloat(target, 'f', -1, 64)).Inc()
	if velocity < 0 {
		velocity = -velocity
	}
	m.releaseVelocity.Observe(velocity)
}

func (m *Metrics) BackdropTap() { m.backdropTaps.Inc() }

func (m *Metrics) Interruption() { m.interruptions.Inc() }

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
