package serviceutils

import (
	"github.com/labstack/echo/v4"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ResponseError writes a failed envelope. data carries structured details such as
// per-field validation messages and may be nil.
func ResponseError(c echo.Context, status int, message string, err error, data ...interface{}) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	return c.JSON(status, resp)
}
