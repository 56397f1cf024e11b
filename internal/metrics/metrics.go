package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	rentalsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "rentals_created_total",
			Help:      "Rentals successfully created.",
		},
	)

	rentalConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "rental_conflicts_total",
			Help:      "Rental create attempts rejected by the overlap check.",
		},
	)

	paymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Name:      "payments_recorded_total",
			Help:      "Payments recorded.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, rentalsCreated, rentalConflicts, paymentsRecorded)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncRentalCreated() { rentalsCreated.Inc() }

func IncRentalConflict() { rentalConflicts.Inc() }

func IncPaymentRecorded() { paymentsRecorded.Inc() }
