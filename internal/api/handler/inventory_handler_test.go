package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/core/query"
)

type stubInventoryService struct {
	owner  string
	id     string
	fields ports.InventoryFields
	params query.Params
	rec    *domain.InventoryRecord
	stats  domain.InventoryStats
	err    error
}

func (s *stubInventoryService) Create(_ context.Context, ownerID string, fields ports.InventoryFields) (*domain.InventoryRecord, error) {
	s.owner, s.fields = ownerID, fields
	return s.rec, s.err
}

func (s *stubInventoryService) Update(_ context.Context, ownerID, recordID string, fields ports.InventoryFields) (*domain.InventoryRecord, error) {
	s.owner, s.id, s.fields = ownerID, recordID, fields
	return s.rec, s.err
}

func (s *stubInventoryService) Delete(_ context.Context, ownerID, recordID string) error {
	s.owner, s.id = ownerID, recordID
	return s.err
}

func (s *stubInventoryService) List(_ context.Context, ownerID string, params query.Params) ([]*domain.InventoryRecord, error) {
	s.owner, s.params = ownerID, params
	if s.rec == nil {
		return nil, s.err
	}
	return []*domain.InventoryRecord{s.rec}, s.err
}

func (s *stubInventoryService) Stats(_ context.Context, ownerID string) (domain.InventoryStats, error) {
	s.owner = ownerID
	return s.stats, s.err
}

var mouse = &domain.InventoryRecord{
	ID:          "665f1c2e9b1d4a0012345678",
	InventoryID: "INV1",
	ProductName: "Mouse",
	Category:    domain.CategoryAccessories,
	Supplier:    "Acme",
	Stock:       domain.StockIn,
	CostUnit:    20,
	Warehouse:   "W1",
	LastUpdated: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	UserID:      "acct-1",
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("claims", &domain.Claims{ID: "acct-1", Username: "alice"})
	return c
}

func TestInventoryHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubInventoryService{rec: mouse}
	handler := NewInventoryHandler(stub)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/inventory", `{"inventoryId":"inv1","productName":"Mouse","category":"Accessories","supplier":"Acme","costUnit":20,"warehouse":"w1"}`)
	if err := handler.Create(authedContext(e, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.owner != "acct-1" {
		t.Fatalf("owner = %q", stub.owner)
	}
	if stub.fields.CostUnit == nil || *stub.fields.CostUnit != 20 || stub.fields.Stock != nil {
		t.Fatalf("unexpected fields: %+v", stub.fields)
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Data["_id"] != mouse.ID || resp.Data["inventoryId"] != "INV1" || resp.Data["userId"] != "acct-1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestInventoryHandler_Create_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewInventoryHandler(&stubInventoryService{})

	req := jsonRequest(http.MethodPost, "/inventory", `{"costUnit":"twenty"}`)
	err := handler.Create(authedContext(e, req, httptest.NewRecorder()))

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestInventoryHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubInventoryService{rec: mouse}
	handler := NewInventoryHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory?search=mou&category=all&stock=In+stock", nil)
	if err := handler.List(authedContext(e, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := query.Params{Search: "mou", Category: "all", Stock: "In stock"}
	if stub.params != want {
		t.Fatalf("params = %+v, want %+v", stub.params, want)
	}

	var resp inventoryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || len(resp.Data) != 1 || resp.Data[0].ProductName != "Mouse" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestInventoryHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	handler := NewInventoryHandler(&stubInventoryService{})

	rec := httptest.NewRecorder()
	if err := handler.List(authedContext(e, httptest.NewRequest(http.MethodGet, "/inventory", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]json.RawMessage
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if string(resp["data"]) != "[]" {
		t.Fatalf("data = %s, want []", resp["data"])
	}
}

func TestInventoryHandler_Stats(t *testing.T) {
	e := newTestEcho()
	stub := &stubInventoryService{stats: domain.InventoryStats{
		TotalItems:      2,
		InStockItems:    1,
		OutOfStockItems: 1,
		TotalValue:      decimal.RequireFromString("20.10"),
	}}
	handler := NewInventoryHandler(stub)

	rec := httptest.NewRecorder()
	if err := handler.Stats(authedContext(e, httptest.NewRequest(http.MethodGet, "/inventory/stats", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp inventoryStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.TotalItems != 2 || resp.Data.OutOfStockItems != 1 || resp.Data.TotalValue != 20.1 {
		t.Fatalf("unexpected stats: %+v", resp.Data)
	}
}

func TestInventoryHandler_Update(t *testing.T) {
	e := newTestEcho()
	stub := &stubInventoryService{rec: mouse}
	handler := NewInventoryHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/", `{"stock":"Out of stock"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(mouse.ID)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.id != mouse.ID || stub.fields.Stock == nil || *stub.fields.Stock != "Out of stock" {
		t.Fatalf("unexpected call: id=%q fields=%+v", stub.id, stub.fields)
	}
	if stub.fields.ProductName != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestInventoryHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubInventoryService{}
	handler := NewInventoryHandler(stub)

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("rec-9")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.id != "rec-9" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected result: id=%q code=%d", stub.id, rec.Code)
	}
}

func TestInventoryHandler_ServiceErrorsPropagate(t *testing.T) {
	e := newTestEcho()
	handler := NewInventoryHandler(&stubInventoryService{err: domain.ErrForbidden})

	c := authedContext(e, httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("rec-9")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
