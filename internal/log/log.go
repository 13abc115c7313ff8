package log

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
}

// Init sets the global level; unknown levels fall back to info.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}

func write(ev *zerolog.Event, c *fiber.Ctx, action string, fields map[string]any) {
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Str("action", action).Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Info(), c, action, fields)
}

// Audit marks operations that mutate user-visible state (logins, orders,
// deletions) so they can be filtered out of the stream.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Info().Bool("audit", true), c, action, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logger.Warn(), c, action, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logger.Error().Err(err), c, action, fields)
}
