// Package metrics records dispatch outcomes in Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records assignment and scheduler outcomes in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	ticks       *prometheus.CounterVec
	tickOrders  *prometheus.CounterVec
}

// NewPromSink registers dispatch metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_assignments_total",
		Help: "Total number of assignment attempts by actor and result",
	}, []string{"assigned_by", "result"})
	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_scheduler_ticks_total",
		Help: "Total number of auto-assign scheduler ticks by result",
	}, []string{"result"})
	tickOrders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_scheduler_orders_total",
		Help: "Total number of orders processed by the scheduler by outcome",
	}, []string{"outcome"})

	for i, c := range []*prometheus.CounterVec{assignments, ticks, tickOrders} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing := are.ExistingCollector.(*prometheus.CounterVec)
			switch i {
			case 0:
				assignments = existing
			case 1:
				ticks = existing
			case 2:
				tickOrders = existing
			}
		}
	}

	return &PromSink{assignments: assignments, ticks: ticks, tickOrders: tickOrders}, nil
}

// RecordAssignment increments the assignment counter for one attempt.
func (s *PromSink) RecordAssignment(assignedBy string, succeeded bool) {
	result := "ok"
	if !succeeded {
		result = "failed"
	}
	s.assignments.WithLabelValues(assignedBy, result).Inc()
}

// RecordSchedulerTick records a completed scheduler pass and its per-order
// outcomes.
func (s *PromSink) RecordSchedulerTick(assigned, failed int) {
	s.ticks.WithLabelValues("ok").Inc()
	s.tickOrders.WithLabelValues("assigned").Add(float64(assigned))
	s.tickOrders.WithLabelValues("failed").Add(float64(failed))
}

// RecordSchedulerSkip records a tick that found the rule inactive.
func (s *PromSink) RecordSchedulerSkip() {
	s.ticks.WithLabelValues("skipped").Inc()
}

// RecordSchedulerError records a tick that failed before processing orders.
func (s *PromSink) RecordSchedulerError() {
	s.ticks.WithLabelValues("error").Inc()
}
