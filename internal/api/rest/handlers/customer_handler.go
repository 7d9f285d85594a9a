package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/internal/resource"
	"github.com/Dhoini/Customer-microservice/internal/service"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler обработчик HTTP запросов для клиентов
type CustomerHandler struct {
	service   service.CustomerService
	assembler resource.Assembler
	log       *logger.Logger
}

// NewCustomerHandler создает новый обработчик клиентов
func NewCustomerHandler(svc service.CustomerService, assembler resource.Assembler, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:   svc,
		assembler: assembler,
		log:       log,
	}
}

// Root возвращает корневой ресурс API со ссылками на остальные эндпоинты
func (h *CustomerHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, h.assembler.ToRoot())
}

// CreateCustomer создает нового клиента
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req domain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	// Сохраненная запись без id бесполезна: на нее нельзя сослаться
	if customer.ID == uuid.Nil {
		h.log.Error("Saved customer has no usable id")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	h.log.Info("Created customer with ID: %s", customer.ID)
	c.Header("Location", resource.SelfHref(customer.ID))
	c.JSON(http.StatusCreated, h.assembler.ToResource(customer))
}

// UpdateCustomer полностью заменяет клиента по id, сохраняя исходный id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.log.Warn("Invalid UUID format: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	var req domain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.log.Warn("Customer not found: %s", id)
			c.Status(http.StatusNotFound)
			return
		}

		h.log.Error("Failed to update customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	h.log.Info("Updated customer with ID: %s", customer.ID)
	c.Header("Location", resource.SelfHref(customer.ID))
	c.JSON(http.StatusOK, h.assembler.ToResource(customer))
}

// GetCustomer возвращает клиента по ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.log.Warn("Invalid UUID format: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}

		h.log.Error("Failed to get customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}

	c.JSON(http.StatusOK, h.assembler.ToResource(customer))
}

// SearchCustomers ищет клиентов по имени и/или фамилии.
// Запрос без параметров и поиск без совпадений оба отдают 404:
// отсутствие фильтров трактуется как "ничего не найдено", а не как
// некорректный запрос.
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	firstName := c.Query("firstName")
	lastName := c.Query("lastName")

	customers, err := h.service.Search(c.Request.Context(), firstName, lastName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}

		h.log.Error("Failed to search customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
		return
	}

	c.JSON(http.StatusOK, h.assembler.ToCollection(customers))
}

// DeleteCustomer удаляет клиента по ID
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.log.Warn("Invalid UUID format: %s", c.Param("id"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.log.Warn("Customer not found: %s", id)
			c.Status(http.StatusNotFound)
			return
		}

		h.log.Error("Failed to delete customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	h.log.Info("Deleted customer with ID: %s", id)
	c.Status(http.StatusOK)
}

// StreamCustomers отдает всех клиентов потоком server-sent events:
// одна запись — одно событие, в порядке обхода хранилища. Результат
// не буферизуется: следующая строка вычитывается только после отправки
// предыдущей, темп задает клиент. Разрыв соединения закрывает итератор.
func (h *CustomerHandler) StreamCustomers(c *gin.Context) {
	iter, err := h.service.StreamAll(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to stream customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream customers"})
		return
	}
	defer func() {
		if err := iter.Close(); err != nil {
			h.log.Error("Customer stream closed with error: %v", err)
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	var customer domain.Customer
	c.Stream(func(w io.Writer) bool {
		if c.Request.Context().Err() != nil {
			return false
		}
		if !iter.Next(&customer) {
			return false
		}
		c.SSEvent("customer", customer)
		return true
	})
}
