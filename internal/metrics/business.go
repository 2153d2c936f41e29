package metrics

// IncrementCardCreated increments the card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// RecordTransitionApplied counts an applied status transition
func (m *Metrics) RecordTransitionApplied(toStatus string) {
	m.safeExecute("RecordTransitionApplied", func() {
		m.TransitionAppliedTotal.WithLabelValues(toStatus).Inc()
	})
}

// RecordTransitionRejected counts a rejected status transition
func (m *Metrics) RecordTransitionRejected() {
	m.safeExecute("RecordTransitionRejected", func() {
		m.TransitionRejectedTotal.Inc()
	})
}

// RecordDependencyValidation counts a validation by verdict
func (m *Metrics) RecordDependencyValidation(valid bool) {
	m.safeExecute("RecordDependencyValidation", func() {
		verdict := "valid"
		if !valid {
			verdict = "invalid"
		}
		m.DependencyValidationTotal.WithLabelValues(verdict).Inc()
	})
}

// IncrementAndonRaised increments the andon raised counter
func (m *Metrics) IncrementAndonRaised() {
	m.safeExecute("IncrementAndonRaised", func() {
		m.AndonRaisedTotal.Inc()
	})
}

// IncrementAndonResolved increments the andon resolved counter
func (m *Metrics) IncrementAndonResolved() {
	m.safeExecute("IncrementAndonResolved", func() {
		m.AndonResolvedTotal.Inc()
	})
}

// SetCardsTotal sets the total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}

// SetCardsByStatus sets the per-status card gauge
func (m *Metrics) SetCardsByStatus(status string, count int64) {
	m.safeExecute("SetCardsByStatus", func() {
		m.CardsByStatus.WithLabelValues(status).Set(float64(count))
	})
}

// SetAndonUnresolved sets the unresolved andon gauge
func (m *Metrics) SetAndonUnresolved(count int64) {
	m.safeExecute("SetAndonUnresolved", func() {
		m.AndonUnresolvedTotal.Set(float64(count))
	})
}

// SetOverduePickCards sets the overdue-pick gauge
func (m *Metrics) SetOverduePickCards(count int64) {
	m.safeExecute("SetOverduePickCards", func() {
		m.OverduePickCardsTotal.Set(float64(count))
	})
}
