package http

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/domain/application"
	"pf-loan-generator/internal/usecase/export"
	"pf-loan-generator/internal/usecase/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the HTML form with its live letter preview.
type PageHandler struct {
	sessions *session.Usecase
	exports  *ExportHandler
	page     *pongo2.Template
}

func NewPageHandler(s *session.Usecase, x *ExportHandler) (*PageHandler, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet("pages", pongo2.NewFSLoader(sub))
	page, err := set.FromFile("session.html")
	if err != nil {
		return nil, fmt.Errorf("load session template: %w", err)
	}
	return &PageHandler{sessions: s, exports: x, page: page}, nil
}

// Index opens a fresh session and redirects to it.
func (h *PageHandler) Index(c echo.Context) error {
	dto, err := h.sessions.Start(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/s/"+dto.ID)
}

func (h *PageHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()
	sid := c.Param("id")
	dto, err := h.sessions.Get(ctx, sid)
	if errors.Is(err, application.ErrSessionNotFound) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err != nil {
		return writeError(c, err)
	}
	l, _, err := h.sessions.Letter(ctx, sid)
	if err != nil {
		return writeError(c, err)
	}
	busy, err := h.exports.pipeline.Busy(ctx, sid)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.page.Execute(pongo2.Context{
		"session": dto,
		"letter":  l,
		"reasons": application.Reasons,
		"other":   application.ReasonOther,
		"status":  exportStatus{Busy: busy, Label: export.Label(busy)},
	})
	if err != nil {
		return fmt.Errorf("render session page: %w", err)
	}
	return c.HTML(http.StatusOK, out)
}

// Update applies the posted form fields and redirects back to the page.
func (h *PageHandler) Update(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}
	patch := make(map[application.Field]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			patch[application.Field(k)] = v[0]
		}
	}
	sid := c.Param("id")
	if _, err := h.sessions.Update(c.Request().Context(), sid, patch); err != nil {
		if errors.Is(err, application.ErrSessionNotFound) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return writeError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/s/"+sid)
}

func (h *PageHandler) Export(c echo.Context) error { return h.exports.Download(c) }
