package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"pf-loan-generator/internal/usecase/export"
)

const ContentType = "application/pdf"

var (
	_ export.Assembler = (*Assembler)(nil)
	_ export.Document  = (*Document)(nil)
)

// Assembler builds single-page PDFs with fpdf.
type Assembler struct {
	Title   string
	Creator string
	// Now stamps the document creation date; tests pin it.
	Now func() time.Time
}

func NewAssembler(title, creator string) *Assembler {
	return &Assembler{Title: title, Creator: creator, Now: time.Now}
}

func (a *Assembler) New(format export.PageFormat) (export.Document, error) {
	unit := strings.ToLower(format.Unit)
	if unit == "" {
		unit = "pt"
	}
	size := format.Size
	if size == "" {
		size = "A4"
	}
	doc := fpdf.New(fpdf.OrientationPortrait, unit, size, "")
	doc.SetCreator(a.Creator, true)
	if a.Title != "" {
		doc.SetTitle(a.Title, true)
	}
	if a.Now != nil {
		doc.SetCreationDate(a.Now())
	}
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf: new document: %w", err)
	}
	return &Document{doc: doc}, nil
}

type Document struct {
	doc    *fpdf.Fpdf
	images int
}

func (d *Document) PageSize() (float64, float64) { return d.doc.GetPageSize() }

// AddImage places encoded image data on the page. mode is accepted for
// parity with the export contract; fpdf picks compression itself.
func (d *Document) AddImage(data []byte, format string, x, y, w, h float64, mode string) error {
	d.images++
	name := fmt.Sprintf("img%d", d.images)
	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format), ReadDpi: false}
	d.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	d.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := d.doc.Error(); err != nil {
		return fmt.Errorf("pdf: add %s image: %w", format, err)
	}
	return nil
}

// Save renders the document into memory under filename.
func (d *Document) Save(filename string) (*export.File, error) {
	var buf bytes.Buffer
	if err := d.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: save %q: %w", filename, err)
	}
	return &export.File{Name: filename, ContentType: ContentType, Data: buf.Bytes()}, nil
}
