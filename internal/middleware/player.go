package middleware

import "github.com/gofiber/fiber/v2"

// EnsurePlayerID resolves the caller's player identity from the X-Player-ID
// header, falling back to the playerId query parameter, and stores it in the
// request locals. Requests without one are rejected.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
