package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chapaquente_orders_created_total",
		Help: "Orders created by delivery mode and customer kind",
	}, []string{"delivery_mode", "customer"})

	orderCreateFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chapaquente_order_create_failures_total",
		Help: "Order creation transactions that were rolled back",
	})

	orderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chapaquente_order_status_updates_total",
		Help: "Admin status updates by target status",
	}, []string{"status"})

	orderQueuePosition = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chapaquente_order_queue_position",
		Help:    "Queue position snapshot assigned at order creation",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})

	stockUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chapaquente_stock_updates_total",
		Help: "Stock rows written by source",
	}, []string{"source"})
)
