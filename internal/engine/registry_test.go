package engine

import (
	"sort"
	"testing"
)

func TestMetricKeysSortedAndComplete(t *testing.T) {
	keys := MetricKeys()
	if len(keys) != len(Registry) {
		t.Fatalf("keys = %d, want %d", len(keys), len(Registry))
	}
	if !sort.StringsAreSorted(keys) {
		t.Error("keys not sorted")
	}
}

func TestRegistryEntries(t *testing.T) {
	tests := []struct {
		key  string
		typ  MetricType
		unit string
	}{
		{"mortality_female", MetricRaw, "birds"},
		{"egg_prod_pct", MetricDerived, "%"},
		{"feed_female_kg", MetricDerived, "kg"},
		{"std_egg_prod", MetricDerived, "%"},
		{"water_total", MetricRaw, "L"},
	}
	for _, tt := range tests {
		m, ok := LookupMetric(tt.key)
		if !ok {
			t.Errorf("%s missing from registry", tt.key)
			continue
		}
		if m.Type != tt.typ || m.Unit != tt.unit {
			t.Errorf("%s = %+v, want type %s unit %s", tt.key, m, tt.typ, tt.unit)
		}
		if m.Label == "" {
			t.Errorf("%s has no label", tt.key)
		}
	}
	if _, ok := LookupMetric("bogus"); ok {
		t.Error("bogus key resolved")
	}
}

func TestEveryRegistryKeyResolvable(t *testing.T) {
	f := testFlock()
	days, _ := Enrich(f, weekOfLogs(f)[:1], nil, DefaultPolicy())
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("metricValue panicked: %v", r)
		}
	}()
	for _, key := range MetricKeys() {
		metricValue(&days[0], key)
	}
}
