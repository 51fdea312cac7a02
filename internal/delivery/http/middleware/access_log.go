package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger.WithPrefix("http")}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		if m != nil && m.logger != nil {
			m.logger.Info("access",
				"rid", rid,
				"ip", c.IP(),
				"method", c.Method(),
				"path", c.OriginalURL(),
				"status", c.Response().StatusCode(),
				"latency", time.Since(start),
				"resp_bytes", len(c.Response().Body()),
				"ua", c.Get("User-Agent"),
			)
		}

		return err
	}
}
