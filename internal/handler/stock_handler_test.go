package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
)

func TestCreateEntry_IncreasesQuantity(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 5})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 20, "unit_price": 3.5}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/entries", body)
	callHandler(t, CreateEntry, c)
	expectStatus(t, rec, http.StatusCreated)

	if got := reloadProduct(t, product.ID).Quantity; got != 25 {
		t.Errorf("Expected quantity 25 after entry, got %d", got)
	}

	var entries []model.StockEntry
	if err := database.GetDB().Find(&entries).Error; err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Quantity != 20 {
		t.Errorf("Expected one entry of quantity 20, got %+v", entries)
	}
}

func TestCreateEntry_OverwritesLotAndExpiry(t *testing.T) {
	e := setupTest(t)
	oldExpiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	product := mustCreateProduct(t, &model.Product{
		Name:       "Buffer",
		Quantity:   3,
		LotNumber:  "LOT-OLD",
		ExpiryDate: &oldExpiry,
	})

	body := fmt.Sprintf(
		`{"product_id": %d, "quantity": 10, "lot_number": "LOT-NEW", "expiry_date": "2027-06-30T00:00:00Z"}`,
		product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/entries", body)
	callHandler(t, CreateEntry, c)
	expectStatus(t, rec, http.StatusCreated)

	updated := reloadProduct(t, product.ID)
	if updated.LotNumber != "LOT-NEW" {
		t.Errorf("Expected lot number LOT-NEW, got %s", updated.LotNumber)
	}
	if updated.ExpiryDate == nil || updated.ExpiryDate.Year() != 2027 {
		t.Errorf("Expected expiry date overwritten to 2027, got %v", updated.ExpiryDate)
	}
	if updated.Quantity != 13 {
		t.Errorf("Expected quantity 13, got %d", updated.Quantity)
	}
}

func TestCreateEntry_Validation(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Gloves", Quantity: 5})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "unknown_product", body: `{"product_id": 9999, "quantity": 5}`, want: http.StatusNotFound},
		{name: "missing_product", body: `{"quantity": 5}`, want: http.StatusBadRequest},
		{name: "zero_quantity", body: fmt.Sprintf(`{"product_id": %d, "quantity": 0}`, product.ID), want: http.StatusBadRequest},
		{name: "negative_quantity", body: fmt.Sprintf(`{"product_id": %d, "quantity": -3}`, product.ID), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodPost, "/api/entries", tt.body)
			callHandler(t, CreateEntry, c)
			expectStatus(t, rec, tt.want)
		})
	}

	if got := reloadProduct(t, product.ID).Quantity; got != 5 {
		t.Errorf("Expected quantity untouched at 5, got %d", got)
	}
}

func TestCreateExit_DecreasesQuantity(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 25})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 25, "reason": "usage"}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/exits", body)
	callHandler(t, CreateExit, c)
	expectStatus(t, rec, http.StatusCreated)

	if got := reloadProduct(t, product.ID).Quantity; got != 0 {
		t.Errorf("Expected quantity 0 after full exit, got %d", got)
	}
}

func TestCreateExit_InsufficientStock(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Acetone", Quantity: 5})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 10, "reason": "usage"}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/exits", body)
	callHandler(t, CreateExit, c)
	expectStatus(t, rec, http.StatusConflict)

	resp := decodeBody(t, rec)
	if resp["available"] != float64(5) || resp["requested"] != float64(10) {
		t.Errorf("Expected available=5 requested=10 in response, got %v", resp)
	}

	if got := reloadProduct(t, product.ID).Quantity; got != 5 {
		t.Errorf("Expected quantity unchanged at 5, got %d", got)
	}

	var exits []model.StockExit
	database.GetDB().Find(&exits)
	if len(exits) != 0 {
		t.Errorf("Expected no exit record after rejection, got %d", len(exits))
	}
}

func TestCreateExit_DefaultsReason(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Tips", Quantity: 100})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 10}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/exits", body)
	callHandler(t, CreateExit, c)
	expectStatus(t, rec, http.StatusCreated)

	var exit model.StockExit
	if err := database.GetDB().First(&exit).Error; err != nil {
		t.Fatalf("Failed to load exit: %v", err)
	}
	if exit.Reason != model.ExitReasonOther {
		t.Errorf("Expected reason to default to %s, got %s", model.ExitReasonOther, exit.Reason)
	}
}

func TestDeleteEntry_DoesNotRestoreQuantity(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Saline", Quantity: 5})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 20}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/entries", body)
	callHandler(t, CreateEntry, c)
	expectStatus(t, rec, http.StatusCreated)

	var entry model.StockEntry
	if err := database.GetDB().First(&entry).Error; err != nil {
		t.Fatalf("Failed to load entry: %v", err)
	}

	c, rec = newJSONContext(e, http.MethodDelete, "/api/entries/:id", "")
	idParam(c, entry.ID)
	callHandler(t, DeleteEntry, c)
	expectStatus(t, rec, http.StatusOK)

	// Deleting the historical transaction leaves the stock level alone
	if got := reloadProduct(t, product.ID).Quantity; got != 25 {
		t.Errorf("Expected quantity to stay 25 after entry deletion, got %d", got)
	}
}

func TestExitThenAlerts_OutOfStockAppears(t *testing.T) {
	e := setupTest(t)
	product := mustCreateProduct(t, &model.Product{Name: "Ethanol", Quantity: 25})

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 25, "reason": "usage"}`, product.ID)
	c, rec := newJSONContext(e, http.MethodPost, "/api/exits", body)
	callHandler(t, CreateExit, c)
	expectStatus(t, rec, http.StatusCreated)

	c, rec = newJSONContext(e, http.MethodGet, "/api/alerts", "")
	callHandler(t, ListAlerts, c)
	expectStatus(t, rec, http.StatusOK)

	var alerts []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &alerts); err != nil {
		t.Fatalf("Failed to decode alerts: %v", err)
	}

	found := false
	for _, a := range alerts {
		if a["id"] == fmt.Sprintf("out_of_stock-%d", product.ID) {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected out_of_stock alert after draining stock, got %v", alerts)
	}
}
