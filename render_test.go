package lorax

import "testing"

// traverseScene emits render commands without drawing them.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	order := 0
	s.traverse(s.root, 0, 0, 1, &order)
}

func TestDiscEmitsOneCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewDisc("d", 5, ColorWhite))
	traverseScene(s)
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if c := s.commands[0]; c.Type != CommandDisc || c.Radius != 5 {
		t.Errorf("command = %+v", c)
	}
}

func TestRectEmitsRectCommand(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 10, 4, ColorWhite)
	r.X, r.Y = 3, 7
	s.Root().AddChild(r)
	traverseScene(s)
	c := s.commands[0]
	if c.Type != CommandRect || c.Width != 10 || c.Height != 4 || c.X != 3 || c.Y != 7 {
		t.Errorf("command = %+v", c)
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	parent := NewContainer("p")
	parent.Visible = false
	parent.AddChild(NewDisc("d", 5, ColorWhite))
	s.Root().AddChild(parent)
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestTransparentNodeSkippedChildrenKept(t *testing.T) {
	s := NewScene()
	parent := NewDisc("p", 5, ColorWhite)
	parent.Alpha = 0
	parent.AddChild(NewDisc("c", 2, ColorWhite))
	s.Root().AddChild(parent)
	traverseScene(s)
	// Alpha multiplies down, so the child is transparent too.
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestContainerNoCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("c"))
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestWorldPositionAndAlphaInCommand(t *testing.T) {
	s := NewScene()
	parent := NewContainer("p")
	parent.X, parent.Y = 100, 50
	parent.Alpha = 0.5
	child := NewDisc("c", 3, ColorFromHex(0xFF0000))
	child.X, child.Y = 10, 5
	child.Alpha = 0.5
	parent.AddChild(child)
	s.Root().AddChild(parent)
	traverseScene(s)

	c := s.commands[0]
	if c.X != 110 || c.Y != 55 {
		t.Errorf("position = (%v,%v), want (110,55)", c.X, c.Y)
	}
	if c.Color.A != 0.25 || c.Color.R != 1 || c.Color.G != 0 {
		t.Errorf("color = %+v", c.Color)
	}
}

func TestTreeOrderAssignment(t *testing.T) {
	s := NewScene()
	for i := 0; i < 3; i++ {
		s.Root().AddChild(NewDisc("d", 1, ColorWhite))
	}
	traverseScene(s)
	for i, c := range s.commands {
		if c.treeOrder != i+1 {
			t.Errorf("command %d treeOrder = %d", i, c.treeOrder)
		}
	}
}

func TestTextCommandNeedsFontAndContent(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewText("empty", "", fixedFont{}))
	s.Root().AddChild(NewText("nofont", "hi", nil))
	s.Root().AddChild(NewText("ok", "hello", fixedFont{}))
	traverseScene(s)
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if c := s.commands[0]; c.Type != CommandText || c.Width != 35 || c.Height != 13 {
		t.Errorf("command = %+v", c)
	}
}

func TestColor32RGBAPremultiplies(t *testing.T) {
	got := color32{1, 0.5, 0, 0.5}.rgba()
	if got.A != 128 || got.R != 128 || got.G != 64 || got.B != 0 {
		t.Errorf("rgba = %+v", got)
	}
}

func TestScaledFaceKeepsBitmapFace(t *testing.T) {
	f := DefaultFont()
	face, scale := scaledFace(f.Face(), 2)
	if face != f.Face() || scale != 2 {
		t.Errorf("scaledFace = (%v, %v), want original face and scale 2", face, scale)
	}
}
