package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch kinds.
const (
	KindHandshake = "handshake"
	KindRequest   = "request"
)

// Ingress outcomes.
const (
	OutcomeResolved  = "resolved"
	OutcomeFailed    = "failed"
	OutcomeUnknown   = "unknown"
	OutcomeTampered  = "tampered"
	OutcomeMalformed = "malformed"
	OutcomeRejected  = "rejected"
)

// Metrics counts dispatches and ingress outcomes. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	dispatch *prometheus.CounterVec
	ingress  *prometheus.CounterVec
	pending  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatch: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletsegue",
				Name:      "dispatch_total",
				Help:      "Requests dispatched to the wallet.",
			},
			[]string{"kind"},
		),
		ingress: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletsegue",
				Name:      "ingress_total",
				Help:      "Wallet responses handled, by outcome.",
			},
			[]string{"outcome"},
		),
		pending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "walletsegue",
				Name:      "pending",
				Help:      "Requests awaiting a wallet response.",
			},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.dispatch, m.ingress, m.pending} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Dispatched counts one outbound request of kind.
func (m *Metrics) Dispatched(kind string) {
	if m == nil {
		return
	}
	m.dispatch.WithLabelValues(kind).Inc()
}

// Ingress counts one handled response with outcome.
func (m *Metrics) Ingress(outcome string) {
	if m == nil {
		return
	}
	m.ingress.WithLabelValues(outcome).Inc()
}

// SetPending records the current registry size.
func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.pending.Set(float64(n))
}

// DispatchCounter exposes the counter for kind, for tests and exporters.
func (m *Metrics) DispatchCounter(kind string) prometheus.Counter {
	return m.dispatch.WithLabelValues(kind)
}

// IngressCounter exposes the counter for outcome.
func (m *Metrics) IngressCounter(outcome string) prometheus.Counter {
	return m.ingress.WithLabelValues(outcome)
}

// PendingGauge exposes the pending gauge.
func (m *Metrics) PendingGauge() prometheus.Gauge { return m.pending }
