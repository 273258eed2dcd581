// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is what a Collector reads at scrape time.
// *Collection[T] implements it for every T.
type StatsSource interface {
	Stats() Stats
	Size() int
	Cap() int
	HistorySize() uint64
}

// Collector exports a collection's statistics as Prometheus metrics.
//
// Values are read from the source when the registry is scraped; the
// collection's operations do no metrics work. Nothing is registered
// implicitly:
//
//	c := bcoll.NewCollection[Event](1024)
//	prometheus.MustRegister(bcoll.NewCollector("ingest", c))
//
// Exported metrics, all labelled collection=<name>:
//
//	bcoll_adds_total{status}   counter  ok, timed_out, completed
//	bcoll_takes_total{status}  counter  ok, timed_out, completed
//	bcoll_peeks_total{status}  counter  ok, timed_out, at_exceed_capacity, completed
//	bcoll_parks_total          counter
//	bcoll_history_total        counter  elements ever inserted
//	bcoll_size                 gauge    resident elements
//	bcoll_capacity             gauge
type Collector struct {
	src StatsSource

	adds     *prometheus.Desc
	takes    *prometheus.Desc
	peeks    *prometheus.Desc
	parks    *prometheus.Desc
	history  *prometheus.Desc
	size     *prometheus.Desc
	capacity *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector for src, labelled with name.
func NewCollector(name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"collection": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("bcoll", "", metric), help, variable, labels)
	}
	return &Collector{
		src:      src,
		adds:     desc("adds_total", "Insertion attempts by outcome.", "status"),
		takes:    desc("takes_total", "Removal attempts by outcome.", "status"),
		peeks:    desc("peeks_total", "Indexed peek attempts by outcome.", "status"),
		parks:    desc("parks_total", "Times a goroutine suspended waiting for progress."),
		history:  desc("history_total", "Elements ever inserted."),
		size:     desc("size", "Resident elements."),
		capacity: desc("capacity", "Bounded capacity."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.adds
	ch <- c.takes
	ch <- c.peeks
	ch <- c.parks
	ch <- c.history
	ch <- c.size
	ch <- c.capacity
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	counter := func(d *prometheus.Desc, v uint64, status ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), status...)
	}
	counter(c.adds, s.Adds, "ok")
	counter(c.adds, s.AddTimeouts, "timed_out")
	counter(c.adds, s.AddRejected, "completed")
	counter(c.takes, s.Takes, "ok")
	counter(c.takes, s.TakeTimeouts, "timed_out")
	counter(c.takes, s.TakeCompleted, "completed")
	counter(c.peeks, s.Peeks, "ok")
	counter(c.peeks, s.PeekTimeouts, "timed_out")
	counter(c.peeks, s.PeekExceeded, "at_exceed_capacity")
	counter(c.peeks, s.PeekCompleted, "completed")
	counter(c.parks, s.Parks)
	counter(c.history, c.src.HistorySize())
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(c.src.Size()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.src.Cap()))
}
