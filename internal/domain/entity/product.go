package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Stock solo se muta a través
// del libro de movimientos (ver application/inventory); el catálogo nunca lo
// escribe directamente.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, siempre > 0
	Stock       int             // nunca negativo
	StockMin    int             // umbral de reposición (default 5)
	ImagePath   string          // referencia devuelta por el almacén de imágenes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NeedsRestock indica si el producto está por debajo de su stock mínimo.
// Derivado, no se persiste.
func (p *Product) NeedsRestock() bool {
	return p.Stock < p.StockMin
}
