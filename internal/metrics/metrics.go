package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK   = "ok"
	OutcomeMiss = "miss"
	OutcomeFail = "fail"
)

// Storefront holds the collectors of the catalog and cart stores.
// A nil *Storefront records nothing.
type Storefront struct {
	catalogLoads        *prometheus.CounterVec
	catalogLoadDuration prometheus.Histogram
	cartMutations       *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
}

func New() *Storefront {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(registerer prometheus.Registerer) *Storefront {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Storefront{
		catalogLoads: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_catalog_loads_total",
			Help: "Catalog load attempts by source and outcome",
		}, []string{"source", "outcome"}),
		catalogLoadDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_catalog_load_duration_seconds",
			Help:    "Duration of a full catalog load including fallback",
			Buckets: prometheus.DefBuckets,
		}),
		cartMutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation",
		}, []string{"op"}),
		persistenceFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_persistence_failures_total",
			Help: "Cart storage reads and writes that failed and were recovered",
		}, []string{"op"}),
	}
}

func (m *Storefront) RecordCatalogLoad(source, outcome string) {
	if m == nil {
		return
	}
	m.catalogLoads.WithLabelValues(source, outcome).Inc()
}

func (m *Storefront) RecordCatalogLoadDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.catalogLoadDuration.Observe(d.Seconds())
}

func (m *Storefront) RecordCartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Storefront) RecordPersistenceFailure(op string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(op).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
