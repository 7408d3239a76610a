// Package observability содержит метрики ядра сессии.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Значения метки result.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics содержит prometheus-метрики операций аутентификации.
type Metrics struct {
	LoginsTotal        *prometheus.CounterVec
	RegistrationsTotal *prometheus.CounterVec
	RefreshesTotal     *prometheus.CounterVec
	EmailChecksTotal   *prometheus.CounterVec

	LogoutsTotal              prometheus.Counter
	SessionInvalidationsTotal prometheus.Counter
}

// NewMetrics создает и регистрирует метрики в переданном registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopauth_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopauth_registrations_total",
				Help: "Total number of registration attempts",
			},
			[]string{"result"},
		),
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopauth_token_refreshes_total",
				Help: "Total number of token refresh attempts",
			},
			[]string{"result"},
		),
		EmailChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopauth_email_checks_total",
				Help: "Total number of email availability checks",
			},
			[]string{"result"},
		),
		LogoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "shopauth_logouts_total",
				Help: "Total number of logouts",
			},
		),
		SessionInvalidationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "shopauth_session_invalidations_total",
				Help: "Total number of sessions invalidated after a backend 401",
			},
		),
	}

	registry.MustRegister(
		m.LoginsTotal,
		m.RegistrationsTotal,
		m.RefreshesTotal,
		m.EmailChecksTotal,
		m.LogoutsTotal,
		m.SessionInvalidationsTotal,
	)

	return m
}
