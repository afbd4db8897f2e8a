package auth

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total number of rejected authentication attempts",
		},
		[]string{"status"},
	)

	loginCodesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_login_codes_issued_total",
			Help: "Total number of one-time login codes issued",
		},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login code verifications by outcome",
		},
		[]string{"outcome"},
	)
)

func recordAuthFailure(status int) {
	authFailuresTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}
