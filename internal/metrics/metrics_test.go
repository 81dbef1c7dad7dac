package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("skyline", reg)

	c.RecordSearch("search", OutcomeReady)
	c.RecordSearch("search", OutcomeReady)
	c.RecordSearch("bootstrap", OutcomeNotFound)
	c.ObserveUpstream("geocoding", 120*time.Millisecond, nil)
	c.ObserveUpstream("forecast", time.Second, errors.New("boom"))
	c.RecordThemeChange("light")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.SearchesTotal.WithLabelValues("search", OutcomeReady)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SearchesTotal.WithLabelValues("bootstrap", OutcomeNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.UpstreamErrors.WithLabelValues("geocoding")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamErrors.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ThemeChanges.WithLabelValues("light")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.UpstreamDuration))
}

func TestCollectorSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("skyline", prometheus.NewRegistry())
		NewCollector("skyline", prometheus.NewRegistry())
	})
}
