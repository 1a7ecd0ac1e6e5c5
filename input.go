package lorax

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Edges are inside.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
	button  MouseButton // button captured at press time
	hovered []*Node     // every interactable node currently under the pointer
	seen    bool        // a position has been reported at least once
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
// It fires for every position change of the mouse or a touch, pressed or not.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(&s.handlers.pointerMove, EventPointerMove, fn)
}

func (s *Scene) addHandler(list *[]pointerHandler, ev EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: ev}
}

// PointerPosition returns the last known mouse position in world space.
func (s *Scene) PointerPosition() Vec2 {
	return Vec2{s.pointers[0].lastX, s.pointers[0].lastY}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the area from sprite dimensions.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeSprite {
		return false
	}
	if n.Radius > 0 {
		return HitCircle{Radius: n.Radius}.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS), appending
// interactable nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type == NodeTypeSprite {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitAll returns every interactable node containing (wx, wy), topmost last.
func (s *Scene) hitAll(wx, wy float64, out []*Node) []*Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for _, n := range s.hitBuf {
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			out = append(out, n)
		}
	}
	return out
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitScratch = s.hitAll(worldX, worldY, s.hitScratch[:0])
	if len(s.hitScratch) == 0 {
		return nil
	}
	return s.hitScratch[len(s.hitScratch)-1]
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle all mouse and touch input.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), pressed, MouseButtonLeft)
	s.processTouchPointers()
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	moved := !ps.seen || wx != ps.lastX || wy != ps.lastY
	ps.lastX, ps.lastY = wx, wy
	ps.seen = true

	if moved {
		ctx := PointerContext{GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID}
		for _, h := range s.handlers.pointerMove {
			h.fn(ctx)
		}
	}

	// Hover tracking is per node: every node under the mouse is "entered",
	// not only the topmost one, so overlapping areas keep their own state.
	if pointerID == 0 {
		s.updateHover(ps, wx, wy, button)
	}

	target := s.hitTest(wx, wy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointer(target, EventPointerDown, pointerID, wx, wy, button)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.firePointer(target, EventClick, pointerID, wx, wy, ps.button)
		}
		s.firePointer(target, EventPointerUp, pointerID, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
	case !pressed && moved && target != nil && target.OnPointerMove != nil:
		target.OnPointerMove(s.pointerContext(target, pointerID, wx, wy, button))
	}
}

// refreshHover re-runs hover tracking for the mouse at its last position, so
// nodes added under a resting pointer are entered on the next frame as they
// would be with a live mouse.
func (s *Scene) refreshHover() {
	ps := &s.pointers[0]
	if !ps.seen {
		return
	}
	s.updateHover(ps, ps.lastX, ps.lastY, MouseButtonLeft)
}

func (s *Scene) updateHover(ps *pointerState, wx, wy float64, button MouseButton) {
	now := s.hitAll(wx, wy, nil)

	// Leaves first, in the order nodes were entered.
	prev := ps.hovered
	for _, n := range prev {
		if !containsNode(now, n) && !n.IsDisposed() && n.OnPointerLeave != nil {
			n.OnPointerLeave(s.pointerContext(n, 0, wx, wy, button))
		}
	}
	for _, n := range now {
		if !containsNode(prev, n) && n.OnPointerEnter != nil && !n.IsDisposed() {
			n.OnPointerEnter(s.pointerContext(n, 0, wx, wy, button))
		}
	}
	ps.hovered = now
}

func containsNode(list []*Node, n *Node) bool {
	for _, c := range list {
		if c == n {
			return true
		}
	}
	return false
}

func (s *Scene) pointerContext(n *Node, pointerID int, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID}
	if n != nil {
		ctx.Node = n
		ctx.UserData = n.UserData
		ctx.LocalX, ctx.LocalY = n.WorldToLocal(wx, wy)
	}
	return ctx
}

// firePointer dispatches a down/up/click event to the target node callback and,
// for down and up, to scene-level handlers.
func (s *Scene) firePointer(target *Node, ev EventType, pointerID int, wx, wy float64, button MouseButton) {
	ctx := s.pointerContext(target, pointerID, wx, wy, button)
	if target != nil {
		switch ev {
		case EventPointerDown:
			if target.OnPointerDown != nil {
				target.OnPointerDown(ctx)
			}
		case EventPointerUp:
			if target.OnPointerUp != nil {
				target.OnPointerUp(ctx)
			}
		case EventClick:
			if target.OnClick != nil {
				target.OnClick(ctx)
			}
		}
	}
	switch ev {
	case EventPointerDown:
		for _, h := range s.handlers.pointerDown {
			h.fn(ctx)
		}
	case EventPointerUp:
		for _, h := range s.handlers.pointerUp {
			h.fn(ctx)
		}
	}
}
