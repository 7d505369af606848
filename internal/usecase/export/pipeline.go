package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"time"

	"github.com/google/uuid"

	exportDomain "pf-loan-generator/internal/domain/export"
)

const (
	RasterScale = 2
	PageMargin  = 40
	ImageFormat = "PNG"
	ImageMode   = "FAST"

	LabelIdle = "Download PDF"
	LabelBusy = "Preparing PDF..."
)

var (
	ErrBusy = errors.New("export already in progress")

	A4Points = PageFormat{Unit: "pt", Size: "A4"}
)

type Pipeline struct {
	raster    Rasterizer
	assembler Assembler
	lock      exportDomain.Locker
	ledger    exportDomain.Repository
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Pipeline)

// WithLedger records every export attempt. Ledger failures are logged and
// never fail the export.
func WithLedger(r exportDomain.Repository) Option { return func(p *Pipeline) { p.ledger = r } }

func WithLogger(l *slog.Logger) Option { return func(p *Pipeline) { p.log = l } }

func NewPipeline(r Rasterizer, a Assembler, lock exportDomain.Locker, opts ...Option) *Pipeline {
	p := &Pipeline{
		raster:    r,
		assembler: a,
		lock:      lock,
		log:       slog.Default(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func busyKey(sessionID string) string { return "export:" + sessionID }

// Busy reports whether an export for the session is in flight.
func (p *Pipeline) Busy(ctx context.Context, sessionID string) (bool, error) {
	return p.lock.Held(ctx, busyKey(sessionID))
}

func Label(busy bool) string {
	if busy {
		return LabelBusy
	}
	return LabelIdle
}

// Export turns the region into a one-page A4 PDF. A nil or empty region is
// a no-op and yields (nil, nil). The session's busy flag is held for the
// whole call and released on every exit path, panics included.
func (p *Pipeline) Export(ctx context.Context, sessionID string, region Region, employeeName string) (file *File, err error) {
	if region == nil {
		return nil, nil
	}
	if w, h := region.Size(); w <= 0 || h <= 0 {
		return nil, nil
	}

	release, ok, err := p.lock.TryAcquire(ctx, busyKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("acquire busy flag: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	rec := p.begin(ctx, sessionID)
	defer func() {
		if r := recover(); r != nil {
			p.finish(ctx, rec, nil, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		p.finish(ctx, rec, file, err)
	}()

	raster, err := p.raster.Rasterize(ctx, region, RasterOptions{
		Scale:      RasterScale,
		UseCORS:    true,
		Background: color.White,
		Logging:    false,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	if rec != nil {
		rec.RasterWidth, rec.RasterHeight = raster.Width, raster.Height
	}

	var img bytes.Buffer
	if err := png.Encode(&img, raster.Image); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}

	doc, err := p.assembler.New(A4Points)
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}
	pageW, pageH := doc.PageSize()
	place := Fit(raster.Width, raster.Height, pageW, pageH, PageMargin)
	if rec != nil {
		rec.OffsetX, rec.OffsetY = place.X, place.Y
		rec.RenderWidth, rec.RenderHeight = place.Width, place.Height
	}

	if err := doc.AddImage(img.Bytes(), ImageFormat, place.X, place.Y, place.Width, place.Height, ImageMode); err != nil {
		return nil, fmt.Errorf("add image: %w", err)
	}
	file, err = doc.Save(FileName(employeeName))
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return file, nil
}

func (p *Pipeline) begin(ctx context.Context, sessionID string) *exportDomain.Record {
	if p.ledger == nil {
		return nil
	}
	rec := &exportDomain.Record{
		RecordID:  uuid.NewString(),
		SessionID: sessionID,
		Status:    exportDomain.StatusInProgress,
		StartedAt: p.now(),
	}
	if err := p.ledger.Create(ctx, rec); err != nil {
		p.log.Warn("export ledger: create failed", "session_id", sessionID, "err", err)
		return nil
	}
	return rec
}

func (p *Pipeline) finish(ctx context.Context, rec *exportDomain.Record, file *File, err error) {
	if err != nil {
		p.log.Error("export failed", "err", err)
	} else if file != nil {
		p.log.Info("export completed", "bytes", len(file.Data))
	}
	if rec == nil {
		return
	}
	done := p.now()
	rec.FinishedAt = &done
	rec.Status = exportDomain.StatusCompleted
	if err != nil {
		rec.Status = exportDomain.StatusFailed
		rec.Error = err.Error()
	}
	if file != nil {
		rec.Bytes = len(file.Data)
	}
	// the request may already be cancelled; the audit row still has to land
	if serr := p.ledger.Save(context.WithoutCancel(ctx), rec); serr != nil {
		p.log.Warn("export ledger: save failed", "record_id", rec.RecordID, "err", serr)
	}
}
