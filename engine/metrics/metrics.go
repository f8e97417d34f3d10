// Package metrics exports the outcome of a run for node_exporter's textfile collector.
package metrics

import (
	"calcvoices/engine/conductor"
	"calcvoices/engine/library"
	"github.com/prometheus/client_golang/prometheus"
)

// Collect builds a registry holding the gauges describing res.
func Collect(res *conductor.Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	accountsTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "accounts",
		Help:      "Accounts known to the run, lazily loaded ones included.",
	})
	holders := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "holders",
		Help:      "Accounts listed by the token holder source.",
	})
	broken := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "broken_delegations",
		Help:      "Delegations excised per graph and reason.",
	}, []string{"graph", "reason"})
	resolved := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "resolved_delegations",
		Help:      "Delegation edges recorded per graph.",
	}, []string{"graph"})
	members := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "council_members",
		Help:      "Selected council size.",
	})
	changes := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "signer_changes",
		Help:      "Signer weight changes in the plan.",
	})
	voices := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "voices_sum",
		Help:      "Sum of the council's signer weights.",
	})
	threshold := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calcvoices",
		Name:      "threshold",
		Help:      "Multisig threshold of the plan.",
	})
	reg.MustRegister(accountsTotal, holders, broken, resolved, members, changes, voices, threshold)

	accountsTotal.Set(float64(res.Registry.Len()))
	holders.Set(float64(res.Holders))
	for _, g := range library.Graphs {
		broken.WithLabelValues(g.String(), "cycle")
		broken.WithLabelValues(g.String(), "unloadable")
	}
	for _, s := range res.Summaries {
		resolved.WithLabelValues(s.Graph.String()).Set(float64(s.Resolved))
		for _, b := range s.Broken {
			broken.WithLabelValues(s.Graph.String(), b.Reason.String()).Inc()
		}
	}
	members.Set(float64(len(res.Members)))
	changes.Set(float64(len(res.Plan.Changes)))
	voices.Set(float64(res.Plan.VoicesSum))
	threshold.Set(float64(res.Plan.Threshold))
	return reg
}

// WriteTextfile writes the metrics of res to path atomically.
func WriteTextfile(path string, res *conductor.Result) error {
	return prometheus.WriteToTextfile(path, Collect(res))
}
