package exportmock

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"

	exportDomain "pf-loan-generator/internal/domain/export"
	"pf-loan-generator/internal/usecase/export"
)

var (
	_ export.Region           = (*Region)(nil)
	_ export.Rasterizer       = (*Rasterizer)(nil)
	_ export.Assembler        = (*Assembler)(nil)
	_ export.Document         = (*Document)(nil)
	_ exportDomain.Repository = (*Ledger)(nil)
)

// Region is a fixed-size solid block.
type Region struct {
	W, H    int
	PaintFn func(dst draw.Image, scale float64) error
}

func (r *Region) Size() (int, int) { return r.W, r.H }

func (r *Region) Paint(dst draw.Image, scale float64) error {
	if r.PaintFn != nil {
		return r.PaintFn(dst, scale)
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Over)
	return nil
}

// Rasterizer is a function-backed mock. Without RasterizeFn it returns an
// image of the scaled region size filled with opts.Background.
type Rasterizer struct {
	RasterizeFn func(ctx context.Context, r export.Region, opts export.RasterOptions) (*export.Raster, error)

	mu    sync.Mutex
	Calls []export.RasterOptions
}

func (m *Rasterizer) Rasterize(ctx context.Context, r export.Region, opts export.RasterOptions) (*export.Raster, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, opts)
	m.mu.Unlock()
	if m.RasterizeFn != nil {
		return m.RasterizeFn(ctx, r, opts)
	}
	w, h := r.Size()
	w, h = int(float64(w)*opts.Scale), int(float64(h)*opts.Scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	return &export.Raster{Image: img, Width: w, Height: h}, nil
}

// AddImageCall captures the arguments of Document.AddImage.
type AddImageCall struct {
	Data       []byte
	Format     string
	X, Y, W, H float64
	Mode       string
}

// Assembler hands out Documents and remembers them for assertions.
type Assembler struct {
	NewFn  func(format export.PageFormat) (export.Document, error)
	PageW  float64
	PageH  float64
	SaveFn func(filename string) (*export.File, error)

	mu   sync.Mutex
	Docs []*Document
}

func (m *Assembler) New(format export.PageFormat) (export.Document, error) {
	if m.NewFn != nil {
		return m.NewFn(format)
	}
	d := &Document{Format: format, W: m.PageW, H: m.PageH, SaveFn: m.SaveFn}
	m.mu.Lock()
	m.Docs = append(m.Docs, d)
	m.mu.Unlock()
	return d, nil
}

type Document struct {
	Format  export.PageFormat
	W, H    float64
	Images  []AddImageCall
	SavedAs string
	AddFn   func(call AddImageCall) error
	SaveFn  func(filename string) (*export.File, error)
}

func (d *Document) PageSize() (float64, float64) { return d.W, d.H }

func (d *Document) AddImage(data []byte, format string, x, y, w, h float64, mode string) error {
	call := AddImageCall{Data: data, Format: format, X: x, Y: y, W: w, H: h, Mode: mode}
	d.Images = append(d.Images, call)
	if d.AddFn != nil {
		return d.AddFn(call)
	}
	return nil
}

func (d *Document) Save(filename string) (*export.File, error) {
	d.SavedAs = filename
	if d.SaveFn != nil {
		return d.SaveFn(filename)
	}
	return &export.File{Name: filename, ContentType: "application/pdf", Data: []byte("%PDF-mock")}, nil
}

// Ledger is an in-memory export ledger.
type Ledger struct {
	CreateFn func(ctx context.Context, r *exportDomain.Record) error
	SaveFn   func(ctx context.Context, r *exportDomain.Record) error

	mu      sync.Mutex
	Records map[string]exportDomain.Record
}

func (m *Ledger) Create(ctx context.Context, r *exportDomain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = map[string]exportDomain.Record{}
	}
	m.Records[r.RecordID] = *r
	return nil
}

func (m *Ledger) Save(ctx context.Context, r *exportDomain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = map[string]exportDomain.Record{}
	}
	m.Records[r.RecordID] = *r
	return nil
}

func (m *Ledger) GetByRecordID(_ context.Context, recordID string) (*exportDomain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Records[recordID]
	if !ok {
		return nil, exportDomain.ErrRecordNotFound
	}
	return &r, nil
}

func (m *Ledger) ListBySessionID(_ context.Context, sessionID string) ([]exportDomain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []exportDomain.Record
	for _, r := range m.Records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}
