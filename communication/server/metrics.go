package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinflip_steps_total",
			Help: "Steps applied to game sessions",
		},
		[]string{"action"},
	)
	labelsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinflip_labels_total",
			Help: "Label actions by correctness",
		},
		[]string{"correct"},
	)
	terminalTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coinflip_terminal_episodes_total",
			Help: "Episodes that ended with a negative flip budget",
		},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinflip_sessions",
			Help: "Open game sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(stepsTotal)
	prometheus.MustRegister(labelsTotal)
	prometheus.MustRegister(terminalTotal)
	prometheus.MustRegister(activeSessions)
}
