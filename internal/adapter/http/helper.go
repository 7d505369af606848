package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/domain/application"
	exportDomain "pf-loan-generator/internal/domain/export"
	"pf-loan-generator/internal/usecase/export"
)

// statusFor maps domain errors → HTTP codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, exportDomain.ErrRecordNotFound):
		return http.StatusNotFound, "export not found"
	case errors.Is(err, application.ErrUnknownField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, export.ErrBusy):
		return http.StatusConflict, export.ErrBusy.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c echo.Context, err error) error {
	code, msg := statusFor(err)
	return c.JSON(code, ErrorResponse{Error: msg})
}

// sendFile serves f as a download.
func sendFile(c echo.Context, f *export.File) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	h.Set(echo.HeaderContentLength, strconv.Itoa(len(f.Data)))
	h.Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, f.ContentType, f.Data)
}
