package lorax

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandDisc CommandType = iota // filled circle
	CommandRect                    // filled rectangle
	CommandText                    // cached text image
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

func (c color32) rgba() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// RenderCommand is a single draw instruction emitted during scene traversal.
// Positions are in world space.
type RenderCommand struct {
	Type          CommandType
	X, Y          float64
	Width, Height float64
	Radius        float64
	Color         color32
	treeOrder     int

	text *TextBlock
}

// traverse walks the node tree depth-first and emits render commands for
// visible sprites and text in painter order.
func (s *Scene) traverse(n *Node, px, py, parentAlpha float64, treeOrder *int) {
	if !n.Visible {
		return
	}
	x, y := px+n.X, py+n.Y
	alpha := parentAlpha * n.Alpha

	if alpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			*treeOrder++
			cmd := RenderCommand{
				X: x, Y: y,
				Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * alpha)},
				treeOrder: *treeOrder,
			}
			if n.Radius > 0 {
				cmd.Type = CommandDisc
				cmd.Radius = n.Radius
			} else {
				cmd.Type = CommandRect
				cmd.Width, cmd.Height = n.Width, n.Height
			}
			s.commands = append(s.commands, cmd)
		case NodeTypeText:
			if tb := n.TextBlock; tb != nil && tb.Font != nil && tb.Content != "" {
				w, h := tb.Size()
				*treeOrder++
				s.commands = append(s.commands, RenderCommand{
					Type: CommandText,
					X:    x, Y: y,
					Width: w, Height: h,
					Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * alpha)},
					treeOrder: *treeOrder,
					text:      tb,
				})
			}
			// NodeTypeContainer doesn't emit commands
		}
	}

	for _, child := range n.children {
		s.traverse(child, x, y, alpha, treeOrder)
	}
}

// Draw renders the scene to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		c := s.ClearColor
		screen.Fill(color32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}.rgba())
	}
	s.commands = s.commands[:0]
	order := 0
	s.traverse(s.root, 0, 0, 1, &order)
	s.submit(screen)
	s.flushSnapshots(screen)
}

func (s *Scene) submit(screen *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandDisc:
			vector.DrawFilledCircle(screen, float32(cmd.X), float32(cmd.Y), float32(cmd.Radius), cmd.Color.rgba(), true)
		case CommandRect:
			vector.DrawFilledRect(screen, float32(cmd.X), float32(cmd.Y), float32(cmd.Width), float32(cmd.Height), cmd.Color.rgba(), false)
		case CommandText:
			img := cmd.text.rasterize()
			if img == nil {
				continue
			}
			res := cmd.text.resolution()
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(1/res, 1/res)
			op.GeoM.Translate(math.Round(cmd.X), math.Round(cmd.Y))
			op.ColorScale.Scale(cmd.Color.R*cmd.Color.A, cmd.Color.G*cmd.Color.A, cmd.Color.B*cmd.Color.A, cmd.Color.A)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(img, &op)
		}
	}
}

func (tb *TextBlock) resolution() float64 {
	if tb.Resolution <= 0 {
		return 1
	}
	return tb.Resolution
}

// rasterize returns the cached text image at Resolution device pixels per
// logical pixel, redrawing it when the layout changed. The node tint is
// applied at draw time, so the image only carries the fill color.
func (tb *TextBlock) rasterize() *ebiten.Image {
	tb.layout()
	ff, ok := tb.Font.(*FaceFont)
	if !ok || tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	res := tb.resolution()
	w := int(math.Ceil(tb.measuredW*res)) + 1
	h := int(math.Ceil(tb.measuredH*res)) + 1
	if tb.image != nil && !tb.imageDirty {
		if b := tb.image.Bounds(); b.Dx() == w && b.Dy() == h {
			return tb.image
		}
	}
	tb.imageDirty = false

	if tb.image != nil {
		if b := tb.image.Bounds(); b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	face, geoScale := scaledFace(ff.Face(), res)
	lh := tb.lineHeight()
	for i, line := range tb.lines {
		op := &text.DrawOptions{}
		op.GeoM.Scale(geoScale, geoScale)
		op.GeoM.Translate(tb.lineOffset(i)*res, float64(i)*lh*res)
		op.ColorScale.Scale(float32(tb.Color.R), float32(tb.Color.G), float32(tb.Color.B), float32(tb.Color.A))
		text.Draw(tb.image, line, face, op)
	}
	return tb.image
}

// scaledFace returns a face drawn res times larger. Outline faces are resized
// so glyphs stay crisp; other faces are scaled geometrically.
func scaledFace(face text.Face, res float64) (text.Face, float64) {
	if res == 1 {
		return face, 1
	}
	if gf, ok := face.(*text.GoTextFace); ok {
		return &text.GoTextFace{
			Source:    gf.Source,
			Direction: gf.Direction,
			Size:      gf.Size * res,
			Language:  gf.Language,
			Script:    gf.Script,
		}, 1
	}
	return face, res
}
