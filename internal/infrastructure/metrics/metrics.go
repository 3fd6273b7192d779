package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bank-level collectors, registered once at package load on the default
// registry. The HTTP router exposes them on /metrics.
var (
	AccountsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobank_accounts_opened_total",
			Help: "Total number of accounts opened, by account type",
		},
		[]string{"type"},
	)

	AccountsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_accounts_closed_total",
		Help: "Total number of accounts closed",
	})

	TransactionsExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_transactions_total",
		Help: "Total number of journal transactions executed",
	})

	OperationsDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobank_operations_denied_total",
			Help: "Total number of business operations denied, by operation and reason",
		},
		[]string{"op", "reason"},
	)

	TransferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gobank_transfer_amount",
		Help:    "Transfer amounts",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})
)
