package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/entity"
	"github.com/jcordero/bodega-api/internal/domain/repository"
)

// Límites de los campos de un movimiento (heredados del modelo de datos).
const (
	maxReasonLen    = 200
	maxCreatedByLen = 50
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único
// escritor del stock de un producto junto con AdjustStockUseCase, que comparte
// la misma primitiva.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Type      string // entrada | salida
	Quantity  int    // > 0, la dirección la da Type
	Reason    string
	CreatedBy string
}

// RegisterMovement valida la entrada, bloquea la fila del producto, aplica el
// cambio de stock y persiste el movimiento, todo en una transacción. Una
// salida mayor al stock disponible falla con InsufficientStockError sin dejar
// ningún artefacto a medias.
//
// El tipo "ajuste" no se acepta aquí: los ajustes a valor objetivo pasan por
// AdjustStockUseCase, que garantiza que el delta nunca viole el invariante.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: serializa los escritores concurrentes
		// sobre el mismo stock.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newStock := product.Stock
		switch input.Type {
		case entity.MovementTypeEntrada:
			newStock += input.Quantity
		case entity.MovementTypeSalida:
			if input.Quantity > product.Stock {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Requested: input.Quantity,
					Available: product.Stock,
				}
			}
			newStock -= input.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Reason:    input.Reason,
			Date:      time.Now(),
			CreatedBy: input.CreatedBy,
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

func validateMovementInput(input MovementInput) error {
	if input.ProductID == "" {
		return &domain.ValidationError{Field: "product_id", Message: "es requerido"}
	}
	if input.Type != entity.MovementTypeEntrada && input.Type != entity.MovementTypeSalida {
		return &domain.ValidationError{Field: "type", Message: "debe ser entrada o salida"}
	}
	if input.Quantity <= 0 {
		return &domain.ValidationError{Field: "quantity", Message: "debe ser mayor que cero"}
	}
	if len(input.Reason) > maxReasonLen {
		return &domain.ValidationError{Field: "reason", Message: "máximo 200 caracteres"}
	}
	if input.CreatedBy == "" || len(input.CreatedBy) > maxCreatedByLen {
		return &domain.ValidationError{Field: "created_by", Message: "requerido, máximo 50 caracteres"}
	}
	return nil
}
