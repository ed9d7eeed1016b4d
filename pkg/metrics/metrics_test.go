package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/metrics"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func counterByOutcome(f *dto.MetricFamily) map[string]float64 {
	out := map[string]float64{}
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" {
				out[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	return out
}

func TestCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	v := validator.New(validator.WithObserver(metrics.NewCollector(reg)))
	ctx := context.Background()
	rules := validator.Rules{
		"name":  {validator.Required()},
		"email": {validator.Required(), validator.Email()},
	}

	_, err := v.Validate(ctx, map[string]any{"name": "Jane", "email": "jane@example.com"}, rules)
	require.NoError(t, err)
	_, err = v.Validate(ctx, map[string]any{"name": "", "email": "nope"}, rules)
	require.NoError(t, err)
	_, err = v.ValidateValue(ctx, "x", validator.Use("missing", nil))
	require.Error(t, err)

	families := gather(t, reg)

	require.Contains(t, families, "rulekit_validations_total")
	assert.Equal(t, map[string]float64{
		metrics.OutcomeValid:   1,
		metrics.OutcomeInvalid: 1,
		metrics.OutcomeAborted: 1,
	}, counterByOutcome(families["rulekit_validations_total"]))

	require.Contains(t, families, "rulekit_validation_errors_total")
	assert.InDelta(t, 2, families["rulekit_validation_errors_total"].GetMetric()[0].GetCounter().GetValue(), 0)

	require.Contains(t, families, "rulekit_validation_properties")
	props := families["rulekit_validation_properties"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(3), props.GetSampleCount())
	assert.InDelta(t, 5, props.GetSampleSum(), 0)

	require.Contains(t, families, "rulekit_validation_duration_seconds")
	assert.Equal(t, uint64(3), families["rulekit_validation_duration_seconds"].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestCollector_Options(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg, metrics.WithNamespace("forms"), metrics.WithDurationBuckets(0.5, 1))
	c.ObserveValidation(context.Background(), validator.Stats{Properties: 1, Duration: 700 * time.Millisecond})

	families := gather(t, reg)
	require.Contains(t, families, "forms_validation_duration_seconds")
	assert.NotContains(t, families, "rulekit_validations_total")

	buckets := families["forms_validation_duration_seconds"].GetMetric()[0].GetHistogram().GetBucket()
	require.Len(t, buckets, 2)
	assert.Equal(t, uint64(0), buckets[0].GetCumulativeCount())
	assert.Equal(t, uint64(1), buckets[1].GetCumulativeCount())
}

func TestCollector_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.NewCollector(reg)
	assert.Panics(t, func() { metrics.NewCollector(reg) })
}
