package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom reports events as Prometheus metrics.
type Prom struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evicted       prometheus.Counter
	forgiven      prometheus.Counter
	allocFailures prometheus.Counter
	residents     prometheus.Gauge
}

// NewProm creates the metrics under namespace and registers them with registerer.
// A nil registerer uses [prometheus.DefaultRegisterer].
// Registration panics if the names are already taken,
// so call it once per namespace and registerer.
func NewProm(namespace string, registerer prometheus.Registerer) *Prom {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	makeC := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	p := &Prom{
		hits:          makeC("hits_total", "Number of lookups served by a resident object"),
		misses:        makeC("misses_total", "Number of lookups that constructed an object"),
		evicted:       makeC("evicted_total", "Number of residents destroyed to make room"),
		forgiven:      makeC("forgiven_total", "Number of marked residents given a second chance"),
		allocFailures: makeC("alloc_failures_total", "Number of constructions refused by the allocator"),
		residents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "residents",
			Help:      "Current number of resident objects",
		}),
	}
	registerer.MustRegister(
		p.hits, p.misses, p.evicted, p.forgiven, p.allocFailures, p.residents,
	)
	return p
}

func (p *Prom) IncHit()  { p.hits.Inc() }
func (p *Prom) IncMiss() { p.misses.Inc() }

func (p *Prom) AddEvicted(n int) {
	if n > 0 {
		p.evicted.Add(float64(n))
	}
}

func (p *Prom) AddForgiven(n int) {
	if n > 0 {
		p.forgiven.Add(float64(n))
	}
}

func (p *Prom) IncAllocFailure() { p.allocFailures.Inc() }

func (p *Prom) SetResidents(n int) {
	if n >= 0 {
		p.residents.Set(float64(n))
	}
}
