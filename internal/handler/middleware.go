package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_directory/internal/logger"
)

// RequestLogger tags every request with an id, echoed in X-Request-ID, and puts a logger
// carrying it into the request context.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			ctx := logger.WithLogger(req.Context(), map[string]interface{}{
				"request_id": id,
				"method":     req.Method,
				"path":       c.Path(),
			})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
