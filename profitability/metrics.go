package profitability

import (
	"github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
)

// Metrics receives the outcome of every profitability evaluation.
type Metrics interface {
	// ObserveProfitability records whether a transaction evaluated under the
	// given label was profitable, together with the ratio of what it offers to
	// what it must pay.
	ObserveProfitability(label string, profitable bool, ratio float64)
}

var (
	_ Metrics = TelemetryMetrics{}
	_ Metrics = NoopMetrics{}
)

// TelemetryMetrics emits profitability metrics through the SDK telemetry sink.
type TelemetryMetrics struct{}

func (TelemetryMetrics) ObserveProfitability(label string, profitable bool, ratio float64) {
	outcome := "profitable"
	if !profitable {
		outcome = "unprofitable"
	}

	telemetry.IncrCounterWithLabels(
		[]string{"profitability", "evaluations"},
		1,
		[]metrics.Label{telemetry.NewLabel("label", label), telemetry.NewLabel("outcome", outcome)},
	)
	telemetry.SetGaugeWithLabels(
		[]string{"profitability", "ratio"},
		float32(ratio),
		[]metrics.Label{telemetry.NewLabel("label", label)},
	)
}

// NoopMetrics discards all observations.
type NoopMetrics struct{}

func (NoopMetrics) ObserveProfitability(string, bool, float64) {}
