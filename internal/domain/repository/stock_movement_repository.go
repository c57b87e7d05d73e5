package repository

import "github.com/jcordero/bodega-api/internal/domain/entity"

// StockMovementRepository puerto de persistencia para el libro de movimientos.
// Solo altas y lecturas: los movimientos son inmutables y se eliminan
// únicamente en cascada con su producto.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos del producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	DeleteByProduct(productID string) error
}
