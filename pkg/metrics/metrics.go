package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
// Все методы безопасно вызывать на nil (метрики выключены)
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreated     *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	CommitRetries       *prometheus.CounterVec
	DiscountResolutions *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		service: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service", "mode"}),

		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected because the slot or the gift card was already taken",
		}, []string{"service", "reason"}),

		CommitRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commit_retries_total",
			Help: "Serializable transaction retries",
		}, []string{"service"}),

		DiscountResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discount_resolutions_total",
			Help: "Promo code and gift card lookups by outcome",
		}, []string{"service", "kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingConflicts,
		m.CommitRetries,
		m.DiscountResolutions,
	)

	return m
}

// Service возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) Service() string {
	if m == nil {
		return ""
	}
	return m.service
}

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated(mode string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.service, mode).Inc()
}

// BookingConflict учитывает отказ из-за занятого слота или использованного сертификата
func (m *Metrics) BookingConflict(reason string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.service, reason).Inc()
}

// CommitRetried учитывает повтор сериализуемой транзакции
func (m *Metrics) CommitRetried() {
	if m == nil {
		return
	}
	m.CommitRetries.WithLabelValues(m.service).Inc()
}

// DiscountResolved учитывает результат проверки кода (kind: promo|gift_card)
func (m *Metrics) DiscountResolved(kind, result string) {
	if m == nil {
		return
	}
	m.DiscountResolutions.WithLabelValues(m.service, kind, result).Inc()
}
