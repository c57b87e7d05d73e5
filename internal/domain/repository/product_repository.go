package repository

import "github.com/jcordero/bodega-api/internal/domain/entity"

// ProductFilter filtros para el listado del catálogo.
type ProductFilter struct {
	Search   string // texto libre sobre nombre/descripción (insensible a tildes)
	LowStock bool   // solo productos con stock < stock_min
	Limit    int
	Offset   int
}

// ProductRepository puerto de persistencia para productos.
// GetForUpdate y UpdateStock existen para que el motor de movimientos sea el
// único escritor del stock; Update no toca ese campo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// una transacción, serializando los escritores por producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	UpdateImage(id, imagePath string) error
	List(filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock < stock_min ordenados por
	// stock ascendente (los más agotados primero).
	ListLowStock() ([]*entity.Product, error)
	Delete(id string) error
}
