package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for bot interactions.
type Metrics struct {
	mu               sync.Mutex
	interactionCount map[string]int64
	errorCount       map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		interactionCount: make(map[string]int64),
		errorCount:       make(map[string]int64),
	}
}

// RecordInteraction increments the counter for a handled interaction.
func (m *Metrics) RecordInteraction(name, outcome string) {
	if m == nil {
		return
	}
	key := name + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactionCount[key]++
}

// RecordError increments error counters by operation and error code.
func (m *Metrics) RecordError(op, code string) {
	if m == nil {
		return
	}
	key := op + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters, keyed "name|outcome" and "op|code".
func (m *Metrics) Snapshot() (interactions, errors map[string]int64) {
	if m == nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	interactions = make(map[string]int64, len(m.interactionCount))
	for k, v := range m.interactionCount {
		interactions[k] = v
	}
	errors = make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return interactions, errors
}
