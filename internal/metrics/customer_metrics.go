package metrics

import (
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CustomerMetrics интерфейс для метрик жизненного цикла клиентов
type CustomerMetrics interface {
	IncCustomerCreated()
	IncCustomerUpdated()
	IncCustomerDeleted()
	IncSearch(kind string)
}

type customerMetrics struct {
	log              *logger.Logger
	lifecycleChanges *prometheus.CounterVec
	searches         *prometheus.CounterVec
}

// NewCustomerMetrics создает новые метрики клиентов
func NewCustomerMetrics(registry *prometheus.Registry, log *logger.Logger) CustomerMetrics {
	lifecycleChanges := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_lifecycle_total",
			Help: "The total number of customer lifecycle operations",
		},
		[]string{"operation"},
	)

	searches := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_searches_total",
			Help: "The total number of customer searches by criteria kind",
		},
		[]string{"kind"},
	)

	return &customerMetrics{
		log:              log,
		lifecycleChanges: lifecycleChanges,
		searches:         searches,
	}
}

// IncCustomerCreated увеличивает счетчик созданных клиентов
func (m *customerMetrics) IncCustomerCreated() {
	m.lifecycleChanges.WithLabelValues("created").Inc()
}

// IncCustomerUpdated увеличивает счетчик обновленных клиентов
func (m *customerMetrics) IncCustomerUpdated() {
	m.lifecycleChanges.WithLabelValues("updated").Inc()
}

// IncCustomerDeleted увеличивает счетчик удаленных клиентов
func (m *customerMetrics) IncCustomerDeleted() {
	m.lifecycleChanges.WithLabelValues("deleted").Inc()
}

// IncSearch увеличивает счетчик поисков по виду критерия
// (last_name, first_name, both, none)
func (m *customerMetrics) IncSearch(kind string) {
	m.searches.WithLabelValues(kind).Inc()
}
