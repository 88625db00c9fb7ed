package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/lk16/cubello/internal/config"
)

const realm = "cubello decision log"

func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", `Basic realm="`+realm+`"`)

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// validToken compares the x-token header with the configured token. An empty
// configured token never matches.
func validToken(header, token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(header), []byte(token)) == 1
}

// AuthOrToken guards the decision log. It accepts the configured token in the
// x-token header or the configured basic auth user. Servers without any
// credentials configured let all requests through.
func AuthOrToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

		if !cfg.HasAuth() {
			return c.Next()
		}

		if validToken(c.Get("x-token"), cfg.Token) {
			return c.Next()
		}

		if cfg.BasicAuthUsername == "" {
			return unauthorized(c)
		}

		return basicauth.New(basicauth.Config{
			Users: map[string]string{
				cfg.BasicAuthUsername: cfg.BasicAuthPassword,
			},
			Realm:        realm,
			Unauthorized: unauthorized,
		})(c)
	}
}
