package http

import (
	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/adapter/middleware"
)

func Register(e *echo.Echo, h *Handler, s *SessionHandler, x *ExportHandler, p *PageHandler) {
	sid := middleware.SessionParam("id")

	e.GET("/health", h.Health)

	// html
	e.GET("/", p.Index)
	e.GET("/s/:id", p.Show, sid)
	e.POST("/s/:id", p.Update, sid)
	e.POST("/s/:id/export", p.Export, sid)

	// json
	api := e.Group("/api")
	api.POST("/sessions", s.CreateSession)
	api.GET("/sessions/:id", s.GetSession, sid)
	api.PATCH("/sessions/:id", s.PatchSession, sid)
	api.GET("/sessions/:id/letter", s.GetLetter, sid)
	api.GET("/sessions/:id/export", x.Status, sid)
	api.POST("/sessions/:id/export", x.Download, sid)
	api.GET("/sessions/:id/exports", x.History, sid)
	api.GET("/exports/:record_id", x.GetRecord)
}
