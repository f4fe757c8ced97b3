// Package metrics собирает Prometheus-метрики загрузки ленты и запросов к ней.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "news"

// Metrics хранит зарегистрированные коллекторы. Нулевой указатель допустим
// и ничего не записывает.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchItems    prometheus.Gauge
	queryTotal    *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Daily feed fetches by outcome.",
		}, []string{"status"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a daily feed fetch including JSON decoding.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetch_items",
			Help:      "Items in the last successfully fetched feed.",
		}),
		queryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_total",
			Help:      "Query operations served, by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.fetchTotal, m.fetchDuration, m.fetchItems, m.queryTotal)
	return m
}

// ObserveFetch записывает исход одной загрузки ленты.
func (m *Metrics) ObserveFetch(ok bool, d time.Duration, items int) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.fetchTotal.WithLabelValues(status).Inc()
	m.fetchDuration.Observe(d.Seconds())
	if ok {
		m.fetchItems.Set(float64(items))
	}
}

// IncQuery увеличивает счетчик запросов операции op.
func (m *Metrics) IncQuery(op string) {
	if m == nil {
		return
	}
	m.queryTotal.WithLabelValues(op).Inc()
}
