package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"laby-stock-backend/internal/alert"
	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
)

func fetchAlerts(t *testing.T, e *echo.Echo) []alert.Alert {
	t.Helper()
	c, rec := newJSONContext(e, http.MethodGet, "/api/alerts", "")
	callHandler(t, ListAlerts, c)
	expectStatus(t, rec, http.StatusOK)

	var alerts []alert.Alert
	if err := json.Unmarshal(rec.Body.Bytes(), &alerts); err != nil {
		t.Fatalf("Failed to decode alerts: %v", err)
	}
	return alerts
}

func TestListAlerts_DerivesFromProducts(t *testing.T) {
	e := setupTest(t)

	soon := time.Now().AddDate(0, 0, 5)
	mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 0})
	mustCreateProduct(t, &model.Product{Name: "Acetone", Quantity: 3})
	mustCreateProduct(t, &model.Product{Name: "Buffer", Quantity: 50, ExpiryDate: &soon})
	mustCreateProduct(t, &model.Product{Name: "Saline", Quantity: 100})

	alerts := fetchAlerts(t, e)
	if len(alerts) != 3 {
		t.Fatalf("Expected 3 alerts, got %d: %+v", len(alerts), alerts)
	}

	// Danger alerts sort first
	if alerts[0].Kind != alert.KindOutOfStock {
		t.Errorf("Expected out_of_stock first, got %s", alerts[0].Kind)
	}
	for _, a := range alerts {
		if a.Read {
			t.Errorf("Expected all alerts unread initially, got %+v", a)
		}
	}
}

func TestMarkAlertRead_SurvivesRecomputation(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 0})
	alertID := fmt.Sprintf("out_of_stock-%d", product.ID)

	c, rec := newJSONContext(e, http.MethodPost, "/api/alerts/:id/read", "")
	c.SetParamNames("id")
	c.SetParamValues(alertID)
	callHandler(t, MarkAlertRead, c)
	expectStatus(t, rec, http.StatusOK)

	// The alert derives again on every read, with the read mark merged in
	for i := 0; i < 2; i++ {
		alerts := fetchAlerts(t, e)
		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if !alerts[0].Read {
			t.Errorf("Expected alert to stay read across recomputation %d", i)
		}
	}
}

func TestListAlerts_PrunesStaleReadMarks(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 0})
	alertID := fmt.Sprintf("out_of_stock-%d", product.ID)

	c, rec := newJSONContext(e, http.MethodPost, "/api/alerts/:id/read", "")
	c.SetParamNames("id")
	c.SetParamValues(alertID)
	callHandler(t, MarkAlertRead, c)
	expectStatus(t, rec, http.StatusOK)

	// Restock the product; the alert no longer derives
	product.Quantity = 500
	if err := database.GetDB().Save(product).Error; err != nil {
		t.Fatalf("Failed to restock product: %v", err)
	}

	if alerts := fetchAlerts(t, e); len(alerts) != 0 {
		t.Fatalf("Expected no alerts after restock, got %+v", alerts)
	}

	var count int64
	database.GetDB().Model(&model.AlertRead{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected stale read mark pruned, found %d", count)
	}
}

func TestMarkAllAlertsRead(t *testing.T) {
	e := setupTest(t)
	mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 0})
	mustCreateProduct(t, &model.Product{Name: "Acetone", Quantity: 2})

	c, rec := newJSONContext(e, http.MethodPost, "/api/alerts/read-all", "")
	callHandler(t, MarkAllAlertsRead, c)
	expectStatus(t, rec, http.StatusOK)

	for _, a := range fetchAlerts(t, e) {
		if !a.Read {
			t.Errorf("Expected alert %s to be read", a.ID)
		}
	}
}

func TestListAlerts_RespectsThresholdSettings(t *testing.T) {
	e := setupTest(t)
	mustCreateProduct(t, &model.Product{Name: "Acetone", Quantity: 15})

	// Default threshold of 10 derives nothing for quantity 15
	if alerts := fetchAlerts(t, e); len(alerts) != 0 {
		t.Fatalf("Expected no alerts at default threshold, got %+v", alerts)
	}

	// Raise the threshold above the quantity
	body := `{"currency": "EUR", "date_format": "DD/MM/YYYY", "low_stock_threshold": 20, "expiry_warning_days": 30, "stock_alerts_enabled": true, "expiry_alerts_enabled": true}`
	c, rec := newJSONContext(e, http.MethodPut, "/api/settings", body)
	callHandler(t, UpdateSettings, c)
	expectStatus(t, rec, http.StatusOK)

	alerts := fetchAlerts(t, e)
	if len(alerts) != 1 || alerts[0].Kind != alert.KindLowStock {
		t.Fatalf("Expected one low_stock alert after raising threshold, got %+v", alerts)
	}
}
