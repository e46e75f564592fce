package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BooksRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lending_books_registered_total",
		Help: "Total number of books registered.",
	})

	HandoffsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lending_handoffs_opened_total",
		Help: "Total number of handoffs opened.",
	})

	HandoffsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lending_handoffs_completed_total",
		Help: "Total number of handoffs that reached both confirmations.",
	})

	HandoffsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lending_handoffs_cancelled_total",
		Help: "Total number of handoffs cancelled by a party.",
	})

	QueueJoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lending_queue_joins_total",
		Help: "Total number of members that joined a book queue.",
	})

	ConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lending_conflicts_total",
		Help: "Total number of lost compare-and-swap writes returned to callers.",
	},
		[]string{"operation"},
	)

	NotifyFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lending_notify_failures_total",
		Help: "Total number of notifications that could not be delivered.",
	},
		[]string{"kind"},
	)

	StaleHandoffs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lending_stale_handoffs",
		Help: "Unfinished handoffs older than the stale threshold at the last sweep.",
	})
)
