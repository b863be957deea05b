package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/faceid/internal/audit"
)

// RequestContext copies the request id set by the requestid middleware into
// the user context, where the recognition service picks it up for auditing.
// Ids longer than the audit column are replaced.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.GetRespHeader(fiber.HeaderXRequestID)
		id := audit.RequestID(raw)
		if id != raw {
			c.Set(fiber.HeaderXRequestID, id)
			c.Locals("requestid", id)
		}

		info := audit.RequestInfo{
			ID:        id,
			Transport: audit.TransportHTTP,
			Peer:      c.IP(),
		}
		c.SetUserContext(audit.WithRequest(c.UserContext(), info))
		return c.Next()
	}
}
