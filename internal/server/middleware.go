package server

import (
	"strconv"
	"time"

	"github.com/emrgen/bookbrainz/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestTime logs the duration of every request and counts it by route.
func RequestTime() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler pick the status before it is recorded
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			logrus.Infof("request time: %s %s %d: %v", c.Request().Method, c.Request().URL.Path, status, time.Since(start))

			return nil
		}
	}
}
