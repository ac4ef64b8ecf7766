// Package middleware holds the fiber handlers shared by the game routes.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PlayerHeader carries the caller's player id in both directions.
const PlayerHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player id in c.Locals("playerID"). The id
// comes from the X-Player-ID header or the playerId query parameter; callers
// without one are given a fresh id, echoed back in the response header.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get(PlayerHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			playerID = uuid.New().String()
		}

		c.Locals("playerID", playerID)
		c.Set(PlayerHeader, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}
