package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "okuri_orders_submitted_total",
		Help: "Total number of orders accepted by the intake form.",
	})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "okuri_deliveries_total",
		Help: "Total number of successful notification deliveries.",
	},
		[]string{"channel"},
	)

	DeliveryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "okuri_delivery_errors_total",
		Help: "Total number of failed notification deliveries.",
	},
		[]string{"channel"},
	)

	ReceiptExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "okuri_receipt_exports_total",
		Help: "Total number of receipt PDFs exported.",
	})
)
