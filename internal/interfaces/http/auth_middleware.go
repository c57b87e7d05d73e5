package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcordero/bodega-api/pkg/jwt"
)

// LocalActor key en c.Locals para el username autenticado.
const LocalActor = "actor"

// ActorSystem centinela inyectado por esta capa cuando no hay identidad
// autenticada: los movimientos siempre quedan atribuidos a alguien.
const ActorSystem = "Sistema"

// OptionalAuth parsea el Bearer Token si está presente y carga el username en
// locals. Nunca rechaza la petición: la identidad es un colaborador, no un
// requisito del núcleo.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		username, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err == nil && username != "" {
			c.Locals(LocalActor, username)
		}
		return c.Next()
	}
}

// GetActor devuelve el username autenticado o el centinela "Sistema".
func GetActor(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalActor).(string); ok && v != "" {
		return v
	}
	return ActorSystem
}
