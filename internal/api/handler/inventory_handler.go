package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/core/query"
)

// InventoryHandler handles HTTP requests for the caller's inventory records.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// List handles GET /inventory.
//
// @Summary      List inventory records
// @Description  Records owned by the caller, newest first. Search matches product name, category, supplier, inventory ID and warehouse; "all" disables a filter.
// @Tags         inventory
// @Produce      json
// @Security     TokenAuth
// @Param        search    query     string  false  "Case-insensitive substring"
// @Param        category  query     string  false  "Category or all"
// @Param        stock     query     string  false  "Stock status or all"
// @Success      200       {object}  inventoryListResponse
// @Failure      401       {object}  ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	records, err := h.service.List(c.Request().Context(), claims.ID, query.Params{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Stock:    c.QueryParam("stock"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inventoryListResponse{
		Success: true,
		Count:   len(records),
		Data:    toInventoryList(records),
	})
}

// Create handles POST /inventory.
//
// @Summary      Create an inventory record
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      inventoryRequest  true  "Record fields"
// @Success      201   {object}  inventoryItemResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := h.service.Create(c.Request().Context(), claims.ID, toInventoryFields(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inventoryItemResponse{Success: true, Data: toInventoryResponse(rec)})
}

// Stats handles GET /inventory/stats.
//
// @Summary      Inventory summary
// @Description  Counts by stock status; totalValue sums the unit cost of in-stock records only.
// @Tags         inventory
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  inventoryStatsResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /inventory/stats [get]
func (h *InventoryHandler) Stats(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryStatsResponse{Success: true, Data: toStatsResponse(stats)})
}

// Update handles PUT /inventory/:id.
//
// @Summary      Update an inventory record
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string            true  "Record ID"
// @Param        body  body      inventoryRequest  true  "Fields to change"
// @Success      200   {object}  inventoryItemResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := h.service.Update(c.Request().Context(), claims.ID, c.Param("id"), toInventoryFields(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryItemResponse{Success: true, Data: toInventoryResponse(rec)})
}

// Delete handles DELETE /inventory/:id.
//
// @Summary      Delete an inventory record
// @Tags         inventory
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Inventory item deleted"})
}
