package export

import (
	"context"
	"image"
	"image/color"
	"image/draw"
)

// Region is a laid-out view that knows its size in CSS-like pixels and
// can paint itself at any pixel density.
type Region interface {
	Size() (width, height int)
	Paint(dst draw.Image, scale float64) error
}

type RasterOptions struct {
	Scale      float64
	UseCORS    bool
	Background color.Color
	Logging    bool
}

type Raster struct {
	Image  image.Image
	Width  int
	Height int
}

type Rasterizer interface {
	Rasterize(ctx context.Context, r Region, opts RasterOptions) (*Raster, error)
}

type PageFormat struct {
	Unit string
	Size string
}

type Assembler interface {
	New(format PageFormat) (Document, error)
}

// Document is a single page being assembled.
type Document interface {
	PageSize() (width, height float64)
	AddImage(data []byte, format string, x, y, w, h float64, mode string) error
	Save(filename string) (*File, error)
}

// File is a finished download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
