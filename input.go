package ludo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// hitExtent is the half size of the unit hit-box centered on a listener's
// local origin.
const hitExtent = 0.5

// ClickEvent describes a listener fired by a click.
type ClickEvent struct {
	Node NodeID
	Name string
	// X and Y are the click position in canvas space.
	X, Y float32
}

// EventSink receives every click dispatched by a scene. It is the bridge to
// systems outside the scene graph, such as an ECS world.
type EventSink interface {
	EmitClick(event ClickEvent)
}

// HitTest reports whether p lies inside the unit square [-0.5, 0.5]² of the
// local space defined by t. Edges count as inside.
func HitTest(t Transform, p mgl32.Vec4) bool {
	local, ok := t.ToLocal(p)
	if !ok {
		return false
	}
	x, y := local.X(), local.Y()
	return -hitExtent <= x && x <= hitExtent &&
		-hitExtent <= y && y <= hitExtent
}

// HitTest reports whether the canvas-space point p falls inside the node's
// hit-box. Only the node's local transform is used.
func (n *Node) HitTest(p mgl32.Vec4) bool {
	return HitTest(n.Transform, p)
}

// Fire invokes the callbacks of listener id in registration order.
// Callbacks may mutate the graph, including destroying id itself.
func (s *Scene) Fire(id NodeID) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.interactive == nil {
		return fmt.Errorf("fire %q: %w", n.Name, ErrNotListener)
	}
	fire(n)
	return nil
}

func fire(n *Node) {
	// The slice header is copied: callbacks appended or a node destroyed
	// during the loop do not affect this pass.
	callbacks := n.interactive.callbacks
	for _, fn := range callbacks {
		fn()
	}
}

// DispatchEvents feeds one frame of pointer state to the scene. Listeners are
// fired only on a press followed by a release (a click). The release
// position is mapped from pixels to canvas space and every active listener
// whose hit-box contains it fires; overlapping listeners all fire.
func (s *Scene) DispatchEvents(p PointerState) {
	clicked := s.pointerWasPressed && !p.Pressed
	s.pointerWasPressed = p.Pressed
	if !clicked {
		return
	}
	s.DispatchClick(p.X, p.Y)
}

// DispatchClick hit-tests the pixel position (px, py) against the listener
// index and fires every listener hit, bypassing the press/release tracking.
// It returns the number of listeners fired.
func (s *Scene) DispatchClick(px, py float64) int {
	point := s.ScreenToCanvas(px, py)

	// Callbacks may add or destroy listeners, so iterate over a snapshot and
	// re-resolve each handle before use. A nested dispatch from inside a
	// callback allocates its own buffer.
	ids := append(s.hitBuf[:0], s.listeners...)
	s.hitBuf = nil
	fired := 0
	for _, id := range ids {
		n := s.Node(id)
		if n == nil || n.interactive == nil || !n.Active {
			continue
		}
		if !n.HitTest(point) {
			continue
		}
		fired++
		fire(n)
		if s.sink != nil {
			s.sink.EmitClick(ClickEvent{Node: id, Name: n.Name, X: point.X(), Y: point.Y()})
		}
	}
	clear(ids)
	s.hitBuf = ids[:0]
	if s.debug {
		logger.Debug("click", "x", px, "y", py, "fired", fired)
	}
	return fired
}

// ScreenToCanvas maps a pixel position to canvas space: pixels to normalized
// device coordinates, then through the inverse UI projection.
func (s *Scene) ScreenToCanvas(px, py float64) mgl32.Vec4 {
	return s.uiProjectionInv.Mul4x1(s.viewport.NDC(px, py))
}

// SetEventSink sets the optional receiver for dispatched clicks.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// pointerReader polls Ebitengine for the primary pointer. A touch counts as a
// press; when the last touch ends the release is reported at the last touch
// position, since the cursor position is meaningless on touch screens.
type pointerReader struct {
	touchIDs  []ebiten.TouchID
	touching  bool
	lastTouch PointerState
}

// read returns this frame's pointer state.
func (r *pointerReader) read() PointerState {
	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	if len(r.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(r.touchIDs[0])
		r.touching = true
		r.lastTouch = PointerState{X: float64(tx), Y: float64(ty), Pressed: true}
		return r.lastTouch
	}
	if r.touching {
		r.touching = false
		return PointerState{X: r.lastTouch.X, Y: r.lastTouch.Y}
	}
	mx, my := ebiten.CursorPosition()
	return PointerState{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}
