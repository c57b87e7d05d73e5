package repository

import "github.com/jcordero/bodega-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (solo login).
type UserRepository interface {
	GetByUsername(username string) (*entity.User, error)
}
