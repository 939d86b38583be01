package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveMutation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveMutation("create", ResultSuccess)
	m.ObserveMutation("create", ResultSuccess)
	m.ObserveMutation("delete", ResultDatabaseError)

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("create", ResultSuccess)); got != 2 {
		t.Fatalf("expected 2 successful creates, got %v", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("delete", ResultDatabaseError)); got != 1 {
		t.Fatalf("expected 1 failed delete, got %v", got)
	}
}

func TestObserveMutationNilReceiver(t *testing.T) {
	var m *Metrics
	m.ObserveMutation("create", ResultSuccess)
}
