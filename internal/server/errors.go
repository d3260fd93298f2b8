package server

import (
	"errors"
	"net/http"

	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
	// Stack is only filled in development.
	Stack string `json:"stack,omitempty"`
}

// ErrorHandler writes classified errors as JSON. Causes of site errors are logged
// but never sent to the client.
func ErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, res := errorResponse(err, development)
		if code >= http.StatusInternalServerError {
			logrus.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, res)
		}
		if err != nil {
			logrus.Errorf("failed to write error response: %v", err)
		}
	}
}

func errorResponse(err error, development bool) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		res := ErrorResponse{Message: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok {
			res.Message = msg
		}
		return he.Code, res
	}

	e := errs.As(err)
	res := ErrorResponse{Message: e.Message, Context: e.Context}
	if development {
		res.Stack = e.StackTrace()
	}
	return e.Status(), res
}
