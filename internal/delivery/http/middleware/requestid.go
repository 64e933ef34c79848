package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the locals key under which the request id is stored.
const RequestIDKey = "requestid"

// RequestID tags every request with a UUID, echoed back in the
// X-Request-ID header and available to the access logger.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}
