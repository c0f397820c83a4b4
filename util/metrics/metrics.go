package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BooksIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "books_issued_total",
		Help: "Total number of books issued",
	})

	BooksReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "books_returned_total",
		Help: "Total number of books returned",
	})

	IssueConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_conflicts_total",
		Help: "Issue attempts rejected because the book was not available",
	})

	PaymentsInitiatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_initiated_total",
		Help: "Total number of payment attempts initiated",
	})

	PaymentsVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_verified_total",
		Help: "Total number of payment verifications by outcome",
	}, []string{"status"})
)
