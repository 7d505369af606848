package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/adapter/middleware"
	"pf-loan-generator/internal/domain/application"
	exportDomain "pf-loan-generator/internal/domain/export"
	"pf-loan-generator/internal/usecase/export"
	"pf-loan-generator/internal/usecase/letter"
	"pf-loan-generator/internal/usecase/session"
)

// RegionFunc lays a composed letter out as something the pipeline can
// rasterize. A nil region means there is nothing to export.
type RegionFunc func(l letter.Letter) (export.Region, error)

type ExportHandler struct {
	sessions *session.Usecase
	pipeline *export.Pipeline
	region   RegionFunc
	ledger   exportDomain.Repository
	log      *slog.Logger
}

// NewExportHandler wires the download endpoints. ledger may be nil when
// exports are not recorded.
func NewExportHandler(s *session.Usecase, p *export.Pipeline, region RegionFunc, ledger exportDomain.Repository, log *slog.Logger) *ExportHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ExportHandler{sessions: s, pipeline: p, region: region, ledger: ledger, log: log}
}

type exportStatus struct {
	Busy  bool   `json:"busy"`
	Label string `json:"label"`
}

func (h *ExportHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()
	sid := c.Param("id")
	if _, err := h.sessions.Get(ctx, sid); err != nil {
		return writeError(c, err)
	}
	busy, err := h.pipeline.Busy(ctx, sid)
	if err != nil {
		h.log.Error("export status", "session_id", sid, "err", err)
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, exportStatus{Busy: busy, Label: export.Label(busy)})
}

// build composes the session's letter and runs it through the pipeline.
func (h *ExportHandler) build(c echo.Context) (*export.File, error) {
	ctx := c.Request().Context()
	sid := c.Param("id")
	l, s, err := h.sessions.Letter(ctx, sid)
	if err != nil {
		return nil, err
	}
	region, err := h.region(*l)
	if err != nil {
		return nil, fmt.Errorf("lay out letter: %w", err)
	}
	return h.pipeline.Export(ctx, sid, region, s.Form.EmployeeName)
}

func (h *ExportHandler) Download(c echo.Context) error {
	f, err := h.build(c)
	if err != nil {
		if !errors.Is(err, application.ErrSessionNotFound) && !errors.Is(err, export.ErrBusy) {
			h.log.Error("export", "session_id", c.Param("id"), "request_id", middleware.RequestIDFrom(c), "err", err)
		}
		return writeError(c, err)
	}
	if f == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return sendFile(c, f)
}

// History lists recorded exports for a session, newest first.
func (h *ExportHandler) History(c echo.Context) error {
	if h.ledger == nil {
		return c.JSON(http.StatusOK, []exportDomain.Record{})
	}
	recs, err := h.ledger.ListBySessionID(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.log.Error("export history", "session_id", c.Param("id"), "err", err)
		return writeError(c, err)
	}
	if recs == nil {
		recs = []exportDomain.Record{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *ExportHandler) GetRecord(c echo.Context) error {
	rid := c.Param("record_id")
	if _, err := uuid.Parse(rid); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid record_id"})
	}
	if h.ledger == nil {
		return writeError(c, exportDomain.ErrRecordNotFound)
	}
	rec, err := h.ledger.GetByRecordID(c.Request().Context(), rid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
