package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyspaceCollector reports the number of keys per table at scrape time.
type KeyspaceCollector struct {
	desc  *prometheus.Desc
	count func() map[string]int
}

// NewKeyspaceCollector creates a collector that calls count on every
// scrape. The map keys become the "table" label.
func NewKeyspaceCollector(count func() map[string]int) *KeyspaceCollector {
	return &KeyspaceCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Number of keys, by table.",
			[]string{"table"}, nil,
		),
		count: count,
	}
}

// Describe implements prometheus.Collector.
func (c *KeyspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *KeyspaceCollector) Collect(ch chan<- prometheus.Metric) {
	for table, n := range c.count() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), table)
	}
}
