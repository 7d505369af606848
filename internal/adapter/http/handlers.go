package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	sessionStore string
	ledger       bool
}

// NewHandler reports the wiring chosen at startup on /health.
func NewHandler(sessionStore string, ledger bool) *Handler {
	return &Handler{sessionStore: sessionStore, ledger: ledger}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"time":          time.Now().UTC().Format(time.RFC3339Nano),
		"session_store": h.sessionStore,
		"ledger":        h.ledger,
	})
}
