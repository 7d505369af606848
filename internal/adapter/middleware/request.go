package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"pf-loan-generator/pkg/id"
)

// RequestID keeps a well-formed client X-Request-Id and mints a UUID
// otherwise. The id is echoed on the response and stored on the context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderRequestID)))
			if !validReqID(rid) {
				rid = uuid.NewString()
			}
			c.Set(ctxRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}

// RequestIDFrom returns the id set by RequestID, or "".
func RequestIDFrom(c echo.Context) string {
	s, _ := c.Get(ctxRequestID).(string)
	return s
}

// RequestLogger writes one slog line per request.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRoutePath: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", RequestIDFrom(c),
			}
			switch {
			case v.Error != nil:
				log.Error("request", append(attrs, "err", v.Error.Error())...)
			case v.Status >= http.StatusInternalServerError:
				log.Error("request", attrs...)
			default:
				log.Info("request", attrs...)
			}
			return nil
		},
	})
}

// SessionParam rejects requests whose :name path param is not a session id.
func SessionParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !id.Valid32(c.Param(name)) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + name})
			}
			return next(c)
		}
	}
}
