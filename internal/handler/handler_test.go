package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/config"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/prometheus"
)

var metricsOnce sync.Once

// setupTest opens a fresh in-memory database and returns an Echo instance.
// The connection pool is capped at one connection so every query sees the
// same in-memory store.
func setupTest(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
		},
		Metrics: config.MetricsConfig{Prefix: "labystock_test"},
	}

	metricsOnce.Do(func() {
		prometheus.InitMetrics(cfg)
	})

	if err := database.InitDB(cfg); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return echo.New()
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func mustCreateProduct(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	if err := database.GetDB().Create(p).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return p
}

func reloadProduct(t *testing.T, id uint) *model.Product {
	t.Helper()
	var product model.Product
	if err := database.GetDB().First(&product, id).Error; err != nil {
		t.Fatalf("Failed to reload product %d: %v", id, err)
	}
	return &product
}

func idParam(c echo.Context, id uint) {
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func callHandler(t *testing.T, h echo.HandlerFunc, c echo.Context) {
	t.Helper()
	if err := h(c); err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
}
