package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdwm_x_events_total",
		Help: "X events processed by the event loop, by event type.",
	}, []string{"type"})

	effectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdwm_effects_total",
		Help: "Effects translated into X requests, by apply path.",
	}, []string{"checked"})

	xErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rdwm_x_errors_total",
		Help: "Asynchronous X protocol errors received by the event loop.",
	})
)
