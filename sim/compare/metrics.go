package compare

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewRegistry exposes comparison results as Prometheus gauges on a private
// registry.
func NewRegistry(results []Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	operationTime := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "racksim_operation_time_seconds",
		Help: "Accumulated simulated travel time by policy and direction",
	}, []string{"policy", "direction"})
	operations := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "racksim_operations",
		Help: "Operations by policy, direction and outcome",
	}, []string{"policy", "direction", "outcome"})
	occupancy := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "racksim_occupied_slots",
		Help: "Occupied slots at peak and at the end of the replay",
	}, []string{"policy", "when"})
	rank := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "racksim_policy_rank",
		Help: "Rank of the policy by total time (1 = best)",
	}, []string{"policy"})

	for _, r := range results {
		m := r.Metrics
		operationTime.WithLabelValues(m.Policy, "store").Set(m.StoreTime)
		operationTime.WithLabelValues(m.Policy, "retrieve").Set(m.RetrieveTime)
		operationTime.WithLabelValues(m.Policy, "total").Set(m.TotalTime())
		operations.WithLabelValues(m.Policy, "store", "ok").Set(float64(m.Stored))
		operations.WithLabelValues(m.Policy, "store", "failed").Set(float64(m.FailedStores))
		operations.WithLabelValues(m.Policy, "retrieve", "ok").Set(float64(m.Retrieved))
		operations.WithLabelValues(m.Policy, "retrieve", "failed").Set(float64(m.FailedRetrievals))
		occupancy.WithLabelValues(m.Policy, "peak").Set(float64(m.PeakOccupancy))
		occupancy.WithLabelValues(m.Policy, "final").Set(float64(m.FinalOccupancy))
		rank.WithLabelValues(m.Policy).Set(float64(r.Rank))
	}
	return reg
}

// WriteMetrics writes the results in Prometheus text format to path.
func WriteMetrics(path string, results []Result) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(results)); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
