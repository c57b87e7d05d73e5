package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT emitido tras un login correcto.
type LoginResponse struct {
	Token string `json:"token"`
}
