package observability

import "testing"

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordInteraction("ticket_close", "ok")
	m.RecordInteraction("ticket_close", "ok")
	m.RecordInteraction("announce", "error")
	m.RecordError("close", "RECORDER_ERROR")

	interactions, errs := m.Snapshot()
	if interactions["ticket_close|ok"] != 2 {
		t.Errorf("ticket_close|ok = %d", interactions["ticket_close|ok"])
	}
	if interactions["announce|error"] != 1 {
		t.Errorf("announce|error = %d", interactions["announce|error"])
	}
	if errs["close|RECORDER_ERROR"] != 1 {
		t.Errorf("close|RECORDER_ERROR = %d", errs["close|RECORDER_ERROR"])
	}

	snap, _ := m.Snapshot()
	snap["ticket_close|ok"] = 99
	again, _ := m.Snapshot()
	if again["ticket_close|ok"] != 2 {
		t.Error("Snapshot leaked internal map")
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordInteraction("x", "ok")
	m.RecordError("x", "y")
	if i, e := m.Snapshot(); i != nil || e != nil {
		t.Error("nil metrics returned non-nil snapshot")
	}
}
