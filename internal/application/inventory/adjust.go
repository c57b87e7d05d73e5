package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/entity"
	"github.com/jcordero/bodega-api/internal/domain/repository"
)

// DefaultAdjustReason motivo usado cuando el ajuste no trae uno.
const DefaultAdjustReason = "Ajuste de stock"

// AdjustStockUseCase lleva el stock de un producto a un valor objetivo,
// expresando la diferencia como un único movimiento del libro (entrada si el
// objetivo es mayor, salida si es menor). Usa la misma primitiva transaccional
// que RegisterMovementUseCase, por lo que stock y libro no pueden divergir.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustTo ajusta el stock del producto al valor objetivo. Si el objetivo
// coincide con el stock actual no se crea movimiento y se devuelve nil: es un
// no-op definido, no un error. La salida derivada de un objetivo >= 0 nunca
// puede exceder el stock disponible, así que la ruta de stock insuficiente es
// inalcanzable aquí.
func (uc *AdjustStockUseCase) AdjustTo(ctx context.Context, productID string, target int, reason, createdBy string) (*entity.StockMovement, error) {
	if productID == "" {
		return nil, &domain.ValidationError{Field: "product_id", Message: "es requerido"}
	}
	if target < 0 {
		return nil, &domain.ValidationError{Field: "target_quantity", Message: "no puede ser negativo"}
	}
	if len(reason) > maxReasonLen {
		return nil, &domain.ValidationError{Field: "reason", Message: "máximo 200 caracteres"}
	}
	if createdBy == "" || len(createdBy) > maxCreatedByLen {
		return nil, &domain.ValidationError{Field: "created_by", Message: "requerido, máximo 50 caracteres"}
	}
	if reason == "" {
		reason = DefaultAdjustReason
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		delta := target - product.Stock
		if delta == 0 {
			return nil
		}
		movType := entity.MovementTypeEntrada
		quantity := delta
		if delta < 0 {
			movType = entity.MovementTypeSalida
			quantity = -delta
		}

		if err := productRepo.UpdateStock(product.ID, target); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      movType,
			Quantity:  quantity,
			Reason:    reason,
			Date:      time.Now(),
			CreatedBy: createdBy,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
