package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// Metrics: 힌트 요청 출처별 카운터/지연 히스토그램
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics: 메트릭을 생성하고 reg 에 등록한다. reg 가 nil 이면 등록하지 않는다.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "action_reaction",
			Name:      "hint_requests_total",
			Help:      "Total number of hint requests by resolved source.",
		}, []string{"source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "action_reaction",
			Name:      "hint_request_duration_seconds",
			Help:      "End-to-end hint resolution duration by resolved source.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"source"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(source model.Source, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(source)).Inc()
	m.duration.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}
