package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"pf-loan-generator/internal/usecase/export"
	"pf-loan-generator/internal/usecase/letter"
)

var _ export.Region = (*LetterRegion)(nil)

// Style sets the letter geometry in unscaled pixels.
type Style struct {
	Width        int
	FontSize     float64
	LineHeight   float64
	SectionGap   int
	ParagraphGap int
	Ink          color.Color
}

var DefaultStyle = Style{
	Width:        640,
	FontSize:     15,
	LineHeight:   1.625,
	SectionGap:   24,
	ParagraphGap: 16,
	Ink:          color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
}

type align int

const (
	alignLeft align = iota
	alignRight
)

type line struct {
	text  string
	bold  bool
	align align
	top   int
}

// LetterRegion is a letter broken into lines at a fixed width. Line breaks
// are computed once at 1x so every pixel density paints the same layout.
type LetterRegion struct {
	fonts  *Fonts
	style  Style
	lines  []line
	height int
}

type block struct {
	paragraphs []paragraph
	// spaced blocks put ParagraphGap between their paragraphs
	spaced   bool
	gapAfter int
}

type paragraph struct {
	text  string
	bold  bool
	align align
	wrap  bool
}

func NewLetterRegion(l letter.Letter, fonts *Fonts, style Style) (*LetterRegion, error) {
	if fonts == nil {
		return nil, fmt.Errorf("raster: fonts are required")
	}
	r := &LetterRegion{fonts: fonts, style: style}

	lineH := r.lineHeight(1)
	regular, err := fonts.face(false, style.FontSize)
	if err != nil {
		return nil, err
	}
	defer regular.Close()
	bold, err := fonts.face(true, style.FontSize)
	if err != nil {
		return nil, err
	}
	defer bold.Close()

	y := 0
	for _, b := range letterBlocks(l, style) {
		for i, p := range b.paragraphs {
			face := regular
			if p.bold {
				face = bold
			}
			text := fonts.printable(face, p.text)
			rows := []string{text}
			if p.wrap {
				rows = wrap(face, text, style.Width)
			}
			for _, row := range rows {
				r.lines = append(r.lines, line{text: row, bold: p.bold, align: p.align, top: y})
				y += lineH
			}
			if b.spaced && i < len(b.paragraphs)-1 {
				y += style.ParagraphGap
			}
		}
		y += b.gapAfter
	}
	r.height = y
	return r, nil
}

func letterBlocks(l letter.Letter, s Style) []block {
	var out []block
	if l.Date != "" {
		out = append(out, block{paragraphs: []paragraph{{text: l.Date, align: alignRight}}, gapAfter: s.SectionGap})
	}

	recipient := make([]paragraph, 0, len(l.Recipient))
	for _, r := range l.Recipient {
		recipient = append(recipient, paragraph{text: r, wrap: true})
	}
	out = append(out,
		block{paragraphs: recipient, gapAfter: s.SectionGap},
		block{paragraphs: []paragraph{{text: l.Subject, bold: true, wrap: true}}, gapAfter: s.SectionGap},
	)

	body := []paragraph{{text: l.Salutation, wrap: true}}
	for _, p := range l.Body {
		body = append(body, paragraph{text: p, wrap: true})
	}
	out = append(out, block{paragraphs: body, spaced: true, gapAfter: s.SectionGap + s.ParagraphGap})

	closing := []paragraph{{text: l.Closing, wrap: true}}
	for i, sig := range l.Signature {
		closing = append(closing, paragraph{text: sig, bold: i == 0, wrap: true})
	}
	return append(out, block{paragraphs: closing})
}

// wrap breaks text on spaces so no row is wider than maxW. A single word
// wider than maxW gets a row of its own.
func wrap(face font.Face, text string, maxW int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var rows []string
	cur := words[0]
	for _, w := range words[1:] {
		if font.MeasureString(face, cur+" "+w).Ceil() > maxW {
			rows = append(rows, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(rows, cur)
}

func (r *LetterRegion) lineHeight(scale float64) int {
	return int(math.Round(r.style.FontSize * r.style.LineHeight * scale))
}

func (r *LetterRegion) Size() (int, int) { return r.style.Width, r.height }

func (r *LetterRegion) Lines() int { return len(r.lines) }

func (r *LetterRegion) Paint(dst draw.Image, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	regular, err := r.fonts.face(false, r.style.FontSize*scale)
	if err != nil {
		return err
	}
	defer regular.Close()
	bold, err := r.fonts.face(true, r.style.FontSize*scale)
	if err != nil {
		return err
	}
	defer bold.Close()

	ink := image.NewUniform(r.style.Ink)
	lineH := r.lineHeight(scale)
	width := int(math.Round(float64(r.style.Width) * scale))

	for _, ln := range r.lines {
		face := regular
		if ln.bold {
			face = bold
		}
		m := face.Metrics()
		baseline := int(math.Round(float64(ln.top)*scale)) + (lineH-m.Height.Ceil())/2 + m.Ascent.Ceil()

		x := 0
		if ln.align == alignRight {
			x = width - font.MeasureString(face, ln.text).Ceil()
		}
		d := font.Drawer{Dst: dst, Src: ink, Face: face, Dot: fixed.P(x, baseline)}
		d.DrawString(ln.text)
	}
	return nil
}
