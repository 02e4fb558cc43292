package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line on stdout, with
// request_id, method, path, status, and latency in milliseconds.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is Logger with an explicit destination and timestamp
// location.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler executed to capture final status
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		_ = enc.Encode(map[string]any{
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Milliseconds()),
		})

		return err
	}
}
