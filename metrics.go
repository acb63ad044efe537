package stepper

import (
	"github.com/enetx/g"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records machine activity as Prometheus series. One Metrics value
// can be shared by many machines; series are labelled by machine name.
type Metrics struct {
	transitions *prometheus.CounterVec
	active      *prometheus.GaugeVec
	destroys    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepper_transitions_total",
			Help: "Total number of transitions by machine, from_state and to_state",
		}, []string{"machine", "from_state", "to_state"}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stepper_active_state",
			Help: "1 for the active state of a machine, 0 for states it has left",
		}, []string{"machine", "state"}),
		destroys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepper_destroyed_total",
			Help: "Total number of destroyed machines by machine",
		}, []string{"machine"}),
	}

	if reg != nil {
		reg.MustRegister(m.transitions, m.active, m.destroys)
	}

	return m
}

func (m *Metrics) primed(machine g.String, state State) {
	m.active.WithLabelValues(string(machine), string(state)).Set(1)
}

func (m *Metrics) transitioned(machine g.String, from, to State) {
	m.transitions.WithLabelValues(string(machine), string(from), string(to)).Inc()
	m.active.WithLabelValues(string(machine), string(from)).Set(0)
	m.active.WithLabelValues(string(machine), string(to)).Set(1)
}

func (m *Metrics) repositioned(machine g.String, from, to State) {
	m.active.WithLabelValues(string(machine), string(from)).Set(0)
	m.active.WithLabelValues(string(machine), string(to)).Set(1)
}

func (m *Metrics) destroyed(machine g.String, last State) {
	m.destroys.WithLabelValues(string(machine)).Inc()
	m.active.WithLabelValues(string(machine), string(last)).Set(0)
}
