package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"pf-loan-generator/internal/usecase/export"
)

var _ export.Rasterizer = (*Rasterizer)(nil)

// Rasterizer paints a region onto an RGBA canvas. Regions paint from local
// fonts only, so RasterOptions.UseCORS has nothing to gate.
type Rasterizer struct{ log *slog.Logger }

func NewRasterizer(log *slog.Logger) *Rasterizer {
	if log == nil {
		log = slog.Default()
	}
	return &Rasterizer{log: log}
}

func (r *Rasterizer) Rasterize(ctx context.Context, region export.Region, opts export.RasterOptions) (*export.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w, h := region.Size()
	pw := int(math.Ceil(float64(w) * scale))
	ph := int(math.Ceil(float64(h) * scale))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("raster: empty region %dx%d", w, h)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, pw, ph))
	bg := opts.Background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if err := region.Paint(canvas, scale); err != nil {
		return nil, fmt.Errorf("paint region: %w", err)
	}
	if opts.Logging {
		r.log.Debug("rasterized region", "width", pw, "height", ph, "scale", scale)
	}
	return &export.Raster{Image: canvas, Width: pw, Height: ph}, nil
}
