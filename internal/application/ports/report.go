package ports

import (
	"context"

	"github.com/jcordero/bodega-api/internal/domain/entity"
)

// LowStockReportGenerator genera el reporte imprimible de productos por
// debajo de su stock mínimo.
type LowStockReportGenerator interface {
	Generate(ctx context.Context, products []*entity.Product) ([]byte, error)
}
