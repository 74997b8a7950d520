package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/VSP7988/ISD/internal/logger"
	"github.com/VSP7988/ISD/internal/metrics"
)

// requestLog logs each request at a level chosen by status and records it
// in the request metrics under its route pattern.
func requestLog(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		dur := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		entry := log.WithFields(logrus.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"route":       route,
			"status":      status,
			"bytes":       len(c.Response().Body()),
			"remote_ip":   c.IP(),
			"duration_ms": dur.Milliseconds(),
		})
		if q := string(c.Request().URI().QueryString()); q != "" {
			entry = entry.WithField("query", q)
		}
		entry.Log(levelForStatus(status), "http request")

		m.ObserveRequest(c.Method(), route, strconv.Itoa(status), dur)
		return nil
	}
}

func levelForStatus(code int) logrus.Level {
	if code >= 500 {
		return logrus.ErrorLevel
	}
	if code >= 400 {
		return logrus.WarnLevel
	}
	return logrus.InfoLevel
}
