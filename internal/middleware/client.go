package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ClientIDHeader = "X-Client-ID"

// EnsureClientID tags the request with a client ID taken from the
// X-Client-ID header or the clientId query parameter. Anonymous clients get
// a fresh ID, echoed back in the response header.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
		}

		c.Locals("clientID", clientID)
		c.Set(ClientIDHeader, clientID)
		return c.Next()
	}
}
