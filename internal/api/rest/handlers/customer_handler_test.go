package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dhoini/Customer-microservice/internal/api/rest"
	"github.com/Dhoini/Customer-microservice/internal/api/rest/handlers"
	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/internal/events"
	"github.com/Dhoini/Customer-microservice/internal/metrics"
	"github.com/Dhoini/Customer-microservice/internal/repository"
	"github.com/Dhoini/Customer-microservice/internal/resource"
	"github.com/Dhoini/Customer-microservice/internal/service"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, service.CustomerService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)

	registry := prometheus.NewRegistry()
	repo := repository.NewInMemoryCustomerRepository(log)
	svc := service.NewCustomerService(repo, events.NoOpProducer{}, metrics.NewCustomerMetrics(registry, log), log)

	customerHandler := handlers.NewCustomerHandler(svc, resource.NewAssembler(), log)
	healthHandler := handlers.NewHealthHandler(svc, log)

	router := rest.SetupRouter(customerHandler, healthHandler, metrics.NewHTTPMetrics(registry), registry, log)
	return router, svc
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createCustomer(t *testing.T, router *gin.Engine, first, last string) (resource.CustomerResource, string) {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/customers", domain.CustomerRequest{FirstName: first, LastName: last})
	require.Equal(t, http.StatusCreated, w.Code)

	var res resource.CustomerResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res, w.Header().Get("Location")
}

func TestRootLinks(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var root resource.RootResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "/", root.Links["self"].Href)
	assert.Equal(t, "/stream/customers", root.Links["stream/customers"].Href)
}

func TestCreateThenGetRoundtrip(t *testing.T) {
	router, _ := newTestRouter(t)

	created, location := createCustomer(t, router, "Tony", "Stark")
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "/customers/"+created.ID.String(), location)
	assert.Equal(t, location, created.Links["self"].Href)

	w := doRequest(router, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched resource.CustomerResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Tony", fetched.FirstName)
	assert.Equal(t, "Stark", fetched.LastName)
}

func TestGetUnknownIDReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/customers/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetMalformedIDReturns400(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/customers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateExistingReplacesNamesKeepsID(t *testing.T) {
	router, _ := newTestRouter(t)
	created, _ := createCustomer(t, router, "Peter", "Parker")

	w := doRequest(router, http.MethodPut, "/customers/"+created.ID.String(),
		domain.CustomerRequest{FirstName: "Spider", LastName: "Man"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/customers/"+created.ID.String(), w.Header().Get("Location"))

	var updated resource.CustomerResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Spider", updated.FirstName)
	assert.Equal(t, "Man", updated.LastName)
}

func TestUpdateUnknownIDReturns404AndCreatesNothing(t *testing.T) {
	router, svc := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/customers/"+uuid.NewString(),
		domain.CustomerRequest{FirstName: "Nobody", LastName: "Here"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteThenGetReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	_, location := createCustomer(t, router, "Nick", "Fury")

	w := doRequest(router, http.MethodDelete, location, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(router, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, location, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func seedAvengers(t *testing.T, router *gin.Engine) {
	t.Helper()
	for _, names := range [][2]string{
		{"Nick", "Fury"},
		{"Tony", "Stark"},
		{"Bruce", "Banner"},
		{"Peter", "Parker"},
	} {
		createCustomer(t, router, names[0], names[1])
	}
}

func TestSearchByLastName(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/customers?lastName=Banner", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var col resource.CustomerCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &col))
	require.Len(t, col.Embedded.Customers, 1)
	assert.Equal(t, "Bruce", col.Embedded.Customers[0].FirstName)
	assert.Equal(t, "/customers", col.Links["self"].Href)
}

func TestSearchByBothNames(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/customers?firstName=Tony&lastName=Stark", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var col resource.CustomerCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &col))
	require.Len(t, col.Embedded.Customers, 1)
	assert.Equal(t, "Tony", col.Embedded.Customers[0].FirstName)
	assert.Equal(t, "Stark", col.Embedded.Customers[0].LastName)
}

func TestSearchMixedNamesReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	// Имя и фамилия от разных клиентов: комбинированный запрос, не объединение
	w := doRequest(router, http.MethodGet, "/customers?firstName=Tony&lastName=Banner", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchWithoutParamsReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/customers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSearchNoMatchesReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/customers?lastName=Thanos", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamCustomersEmitsOneEventPerRecord(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/stream/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	payloads := parseSSE(t, w.Body.String())
	require.Len(t, payloads, 4)
	for _, payload := range payloads {
		var c domain.Customer
		require.NoError(t, json.Unmarshal([]byte(payload), &c))
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.NotEmpty(t, c.FirstName)
		assert.NotEmpty(t, c.LastName)
	}
}

func TestStreamEmptyStoreTerminatesWithNoEvents(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/stream/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, parseSSE(t, w.Body.String()))
}

// parseSSE вытаскивает полезную нагрузку data: из тела event-stream
func parseSSE(t *testing.T, body string) []string {
	t.Helper()
	var payloads []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data:") {
			payloads = append(payloads, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	return payloads
}

func TestHealthReportsCustomerCount(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAvengers(t, router)

	w := doRequest(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health struct {
		Status    string `json:"status"`
		Customers int64  `json:"customers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "OK", health.Status)
	assert.Equal(t, int64(4), health.Customers)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router, _ := newTestRouter(t)

	// Прогреем счетчики хотя бы одним запросом
	doRequest(router, http.MethodGet, "/health", nil)

	w := doRequest(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCreateLocationMatchesRepresentationID(t *testing.T) {
	router, _ := newTestRouter(t)

	created, location := createCustomer(t, router, "Bruce", "Banner")
	assert.Equal(t, fmt.Sprintf("/customers/%s", created.ID), location)
}
