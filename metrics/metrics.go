// Package metrics exposes storefront counters on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "orders_created_total",
		Help:      "Total number of orders committed through checkout.",
	})

	CheckoutFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout attempts.",
	}, []string{"reason"})

	StatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "order_status_transitions_total",
		Help:      "Total number of staff order status transitions.",
	}, []string{"to"})
)

func init() {
	prometheus.MustRegister(OrdersCreated, CheckoutFailures, StatusTransitions)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
