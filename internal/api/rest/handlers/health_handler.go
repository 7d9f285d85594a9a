package handlers

import (
	"net/http"
	"time"

	"github.com/Dhoini/Customer-microservice/internal/service"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gin-gonic/gin"
)

// HealthHandler обработчик для проверки работоспособности сервиса
type HealthHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

// NewHealthHandler создает новый обработчик health-чека
func NewHealthHandler(svc service.CustomerService, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		service: svc,
		log:     log,
	}
}

// HealthCheck проверяет доступность хранилища через Count
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.log.Error("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"time":   time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"customers": count,
		"time":      time.Now().Format(time.RFC3339),
	})
}
