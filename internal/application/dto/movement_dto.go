package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Type solo admite entrada o salida; los ajustes van por su propio endpoint.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments: lleva el stock
// del producto al valor objetivo expresando la diferencia como un movimiento.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Target    int    `json:"target_quantity"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
}

// MovementListResponse listado paginado de movimientos (más recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
