package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func getGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestIncrementCardCreated(t *testing.T) {
	m := getTestMetrics()

	initial := getCounterValue(t, m.CardCreatedTotal)
	m.IncrementCardCreated()

	if got := getCounterValue(t, m.CardCreatedTotal); got != initial+1 {
		t.Errorf("Expected counter to increment, got %f -> %f", initial, got)
	}
}

func TestRecordTransitionApplied(t *testing.T) {
	m := getTestMetrics()

	m.RecordTransitionApplied("assembling")
	m.RecordTransitionApplied("assembling")
	m.RecordTransitionApplied("completed")

	if got := getCounterValue(t, m.TransitionAppliedTotal.WithLabelValues("assembling")); got != 2 {
		t.Errorf("Expected 2 assembling transitions, got %f", got)
	}
	if got := getCounterValue(t, m.TransitionAppliedTotal.WithLabelValues("completed")); got != 1 {
		t.Errorf("Expected 1 completed transition, got %f", got)
	}
}

func TestRecordDependencyValidation(t *testing.T) {
	m := getTestMetrics()

	m.RecordDependencyValidation(true)
	m.RecordDependencyValidation(false)
	m.RecordDependencyValidation(false)

	if got := getCounterValue(t, m.DependencyValidationTotal.WithLabelValues("valid")); got != 1 {
		t.Errorf("Expected 1 valid verdict, got %f", got)
	}
	if got := getCounterValue(t, m.DependencyValidationTotal.WithLabelValues("invalid")); got != 2 {
		t.Errorf("Expected 2 invalid verdicts, got %f", got)
	}
}

func TestSetCardsTotal(t *testing.T) {
	m := getTestMetrics()

	tests := []struct {
		name  string
		count int64
	}{
		{"zero cards", 0},
		{"one card", 1},
		{"full floor", 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetCardsTotal(tt.count)
			if got := getGaugeValue(t, m.CardsTotal); got != float64(tt.count) {
				t.Errorf("Expected gauge value %d, got %f", tt.count, got)
			}
		})
	}
}

func TestSetAndonUnresolved(t *testing.T) {
	m := getTestMetrics()

	m.SetAndonUnresolved(7)
	if got := getGaugeValue(t, m.AndonUnresolvedTotal); got != 7 {
		t.Errorf("Expected 7 unresolved issues, got %f", got)
	}
	m.SetAndonUnresolved(0)
	if got := getGaugeValue(t, m.AndonUnresolvedTotal); got != 0 {
		t.Errorf("Expected gauge reset to 0, got %f", got)
	}
}
