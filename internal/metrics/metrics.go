// Package metrics defines the Prometheus collectors exported by the
// matching engine. All collectors are registered on the default registry
// and served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_received_total",
			Help: "Total number of orders received",
		},
		[]string{"instrument", "side"},
	)

	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of orders rejected by validation",
		},
		[]string{"instrument"},
	)

	TradesExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_executed_total",
			Help: "Total number of trades executed",
		},
		[]string{"instrument"},
	)

	OrderLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_latency_seconds",
			Help:    "Time from order receipt to outcome, including matching",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		},
		[]string{"instrument"},
	)

	BookDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "order_book_depth",
			Help: "Current number of resting orders per side",
		},
		[]string{"instrument", "side"},
	)

	BestBidPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_bid_price",
			Help: "Current best bid price, 0 when the side is empty",
		},
		[]string{"instrument"},
	)

	BestAskPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_ask_price",
			Help: "Current best ask price, 0 when the side is empty",
		},
		[]string{"instrument"},
	)
)
