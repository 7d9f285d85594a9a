package rest

import (
	"github.com/Dhoini/Customer-microservice/internal/api/rest/handlers"
	"github.com/Dhoini/Customer-microservice/internal/api/rest/middleware"
	"github.com/Dhoini/Customer-microservice/internal/metrics"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(
	customerHandler *handlers.CustomerHandler,
	healthHandler *handlers.HealthHandler,
	httpMetrics metrics.HTTPMetrics,
	registry *prometheus.Registry,
	log *logger.Logger,
) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.MetricsMiddleware(httpMetrics))
	r.Use(gin.Recovery())

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", healthHandler.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Корневой ресурс со ссылками
	r.GET("/", customerHandler.Root)

	// Клиенты
	customers := r.Group("/customers")
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.SearchCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

	// Поток всех клиентов (server-sent events)
	r.GET("/stream/customers", customerHandler.StreamCustomers)

	return r
}
