package lorax

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// FaceFont wraps an Ebitengine text/v2 face.
type FaceFont struct {
	face text.Face
	lh   float64
}

// NewFaceFont wraps face, deriving the line height from its metrics.
func NewFaceFont(face text.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// DefaultFont returns a fixed 7x13 bitmap font that needs no assets.
func DefaultFont() *FaceFont {
	return NewFaceFont(text.NewGoXFace(basicfont.Face7x13))
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*FaceFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("lorax: failed to parse TTF data: %w", err)
	}
	return NewFaceFont(&text.GoTextFace{Source: source, Size: size}), nil
}

// MeasureString returns the width and height of the rendered text.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *FaceFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face for direct text/v2 rendering.
func (f *FaceFont) Face() text.Face {
	return f.face
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64 // 0 disables wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Resolution is the device pixel ratio the text is rasterized at. It
	// only affects crispness, never layout.
	Resolution float64

	// Cached layout (unexported)
	layoutDirty bool
	lines       []string
	lineWidths  []float64
	measuredW   float64
	measuredH   float64

	image      *ebiten.Image // cached rasterization, see render.go
	imageDirty bool
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Invalidate forces a re-layout after direct field edits.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Size returns the laid-out width and height in logical pixels.
func (tb *TextBlock) Size() (float64, float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout greedily wraps words at WrapWidth and caches line widths.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.imageDirty = true
	tb.lines = tb.lines[:0]
	tb.lineWidths = tb.lineWidths[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil || tb.Content == "" {
		return
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			tb.pushLine("")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if tb.WrapWidth > 0 {
				if cw, _ := tb.Font.MeasureString(candidate); cw > tb.WrapWidth {
					tb.pushLine(cur)
					cur = w
					continue
				}
			}
			cur = candidate
		}
		tb.pushLine(cur)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
}

func (tb *TextBlock) pushLine(s string) {
	w, _ := tb.Font.MeasureString(s)
	tb.lines = append(tb.lines, s)
	tb.lineWidths = append(tb.lineWidths, w)
	if w > tb.measuredW {
		tb.measuredW = w
	}
}

// lineOffset returns the x offset of line i within the widest line.
func (tb *TextBlock) lineOffset(i int) float64 {
	switch tb.Align {
	case TextAlignCenter:
		return (tb.measuredW - tb.lineWidths[i]) / 2
	case TextAlignRight:
		return tb.measuredW - tb.lineWidths[i]
	}
	return 0
}
