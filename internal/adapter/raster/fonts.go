package raster

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds the parsed regular and bold typefaces used to paint letters.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font
	// runes the typefaces cannot draw and what to print instead
	substitutes map[rune]string
}

// DefaultSubstitutes covers glyphs the Go fonts lack.
var DefaultSubstitutes = map[rune]string{
	'₹': "Rs.",
}

func LoadGoFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold, substitutes: DefaultSubstitutes}, nil
}

func (f *Fonts) face(bold bool, sizePx float64) (font.Face, error) {
	src := f.regular
	if bold {
		src = f.bold
	}
	return opentype.NewFace(src, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// printable replaces runes the face has no glyph for.
func (f *Fonts) printable(face font.Face, s string) string {
	var b strings.Builder
	for _, r := range s {
		if _, ok := face.GlyphAdvance(r); !ok {
			if sub, found := f.substitutes[r]; found {
				b.WriteString(sub)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
