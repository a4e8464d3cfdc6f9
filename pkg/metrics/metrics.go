package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "curalink", Name: "auth_attempts_total", Help: "Authorization outcomes by result (ok, unauthenticated, forbidden)."},
		[]string{"result"},
	)
	FavouriteOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "curalink", Name: "favourite_ops_total", Help: "Favourite ledger operations by action (added, duplicate, removed)."},
		[]string{"action"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "curalink", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "curalink", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(FavouriteOps)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
