package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/repository"
	pkgjwt "github.com/jcordero/bodega-api/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de usuarios. La identidad solo sirve para atribuir
// movimientos: las rutas funcionan también sin token (actor "Sistema").
type AuthUseCase struct {
	users repository.UserRepository
	cfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(users repository.UserRepository, cfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, cfg: cfg}
}

// Login valida las credenciales y emite un JWT con el username como claim.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	user, err := uc.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return pkgjwt.Generate(uc.cfg.Secret, user.Username, uc.cfg.Issuer, uc.cfg.ExpMinutes)
}
