// Package metrics exports validation runs as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	v := validator.New(validator.WithObserver(metrics.NewCollector(reg)))
//
// The collector exposes rulekit_validations_total{outcome}, where outcome
// is valid, invalid or aborted, along with rulekit_validation_errors_total
// and histograms of properties per run and run duration.
package metrics
