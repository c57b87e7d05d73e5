package entity

import "time"

// Tipos de movimiento de stock. La dirección del cambio la define el tipo;
// la cantidad es siempre positiva.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
	MovementTypeAjuste  = "ajuste" // reservado para la reconciliación
)

// StockMovement es un registro del libro de movimientos: cada cambio de stock
// queda trazado con actor, motivo y fecha. Nunca se edita ni se borra de forma
// individual (solo en cascada al eliminar el producto).
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada, salida, ajuste
	Quantity  int    // magnitud del cambio, > 0
	Reason    string
	Date      time.Time // inmutable una vez creado
	CreatedBy string    // username o el centinela "Sistema"
}
