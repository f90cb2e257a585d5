package handler

import "time"

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
// Field names the offending input on duplicate-key failures; Errors lists
// every failed field on validation failures; Error carries internal detail
// in development only.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Field   string       `json:"field,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

type availabilityResponse struct {
	Success   bool   `json:"success"`
	Available bool   `json:"available"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
}

// --- Inventory ---

// inventoryRequest is shared by create and update. Absent fields stay nil:
// required on create, untouched on update.
type inventoryRequest struct {
	InventoryID *string  `json:"inventoryId"`
	ProductName *string  `json:"productName"`
	Category    *string  `json:"category"`
	Supplier    *string  `json:"supplier"`
	Stock       *string  `json:"stock"`
	CostUnit    *float64 `json:"costUnit"`
	Warehouse   *string  `json:"warehouse"`
}

type inventoryResponse struct {
	ID          string    `json:"_id"`
	InventoryID string    `json:"inventoryId"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	Supplier    string    `json:"supplier"`
	Stock       string    `json:"stock"`
	CostUnit    float64   `json:"costUnit"`
	Warehouse   string    `json:"warehouse"`
	LastUpdated time.Time `json:"lastUpdated"`
	UserID      string    `json:"userId"`
}

type inventoryItemResponse struct {
	Success bool              `json:"success"`
	Data    inventoryResponse `json:"data"`
}

type inventoryListResponse struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []inventoryResponse `json:"data"`
}

type statsResponse struct {
	TotalItems      int     `json:"totalItems"`
	InStockItems    int     `json:"inStockItems"`
	OutOfStockItems int     `json:"outOfStockItems"`
	TotalValue      float64 `json:"totalValue"`
}

type inventoryStatsResponse struct {
	Success bool          `json:"success"`
	Data    statsResponse `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
