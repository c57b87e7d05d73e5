package entity

import "time"

// User identidad local para atribuir movimientos. La autenticación es un
// colaborador del núcleo: sin token, los handlers atribuyen al centinela.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
