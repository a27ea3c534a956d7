package ludo

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// sceneCounter hands out scene serials (no atomic: ludo is single-threaded).
var sceneCounter uint32

func nextSceneSerial() uint32 {
	sceneCounter++
	return sceneCounter
}

// Scene owns a node arena, two root forests (world space and canvas space),
// the main camera and the listener index, and runs per-frame draw and event
// dispatch.
type Scene struct {
	// Name labels the scene in logs.
	Name string

	// MainCamera projects the world roots. Canvas roots ignore it.
	MainCamera Camera

	// OnUpdate and OnLateUpdate run once per frame from Update, before and
	// after the camera animation advances. dt is in seconds.
	OnUpdate     func(s *Scene, dt float64)
	OnLateUpdate func(s *Scene, dt float64)

	// OnDispose runs once when the scene is disposed, before its nodes are
	// released.
	OnDispose func(s *Scene)

	serial uint32

	// Arena
	slots []slot
	free  []uint32
	live  int

	worldRoots  []NodeID
	canvasRoots []NodeID
	listeners   []NodeID

	viewport        Viewport
	uiProjection    mgl32.Mat4
	uiProjectionInv mgl32.Mat4

	// Input
	pointerWasPressed bool
	hitBuf            []NodeID
	sink              EventSink

	list     *DrawList
	debug    bool
	disposed bool
}

// NewScene creates an empty scene for a viewport. The UI projection and the
// main camera's projection are fixed from the viewport's aspect ratio here.
func NewScene(name string, vp Viewport) *Scene {
	aspect := vp.AspectRatio()
	ui := uiProjectionFor(aspect)
	return &Scene{
		Name:            name,
		MainCamera:      DefaultCamera(aspect),
		serial:          nextSceneSerial(),
		viewport:        vp,
		uiProjection:    ui,
		uiProjectionInv: ui.Inv(),
		list:            NewDrawList(),
	}
}

// uiProjectionFor squeezes the longer screen axis so the canvas keeps square
// units: x is scaled by 1/aspect on landscape screens, y by aspect on
// portrait ones.
func uiProjectionFor(aspect float32) mgl32.Mat4 {
	if aspect >= 1 {
		return mgl32.Scale3D(1/aspect, 1, 1)
	}
	return mgl32.Scale3D(1, aspect, 1)
}

// UIProjection returns the canvas projection fixed at construction.
func (s *Scene) UIProjection() mgl32.Mat4 {
	return s.uiProjection
}

// Viewport returns the pixel size used to map pointer positions.
func (s *Scene) Viewport() Viewport {
	return s.viewport
}

// SetViewport changes the pixel size used to map pointer positions. The UI
// projection and camera projection are not rebuilt.
func (s *Scene) SetViewport(vp Viewport) {
	s.viewport = vp
}

// Update runs the per-frame hooks and advances the camera animation.
func (s *Scene) Update(dt float64) {
	if s.disposed {
		return
	}
	if s.OnUpdate != nil {
		s.OnUpdate(s, dt)
	}
	s.MainCamera.update(float32(dt))
	if s.OnLateUpdate != nil {
		s.OnLateUpdate(s, dt)
	}
}

// Render appends the scene's draw commands to list: world roots through the
// camera's projection * view, then canvas roots through the UI projection.
func (s *Scene) Render(list *DrawList) {
	if s.disposed {
		return
	}
	pv := s.MainCamera.ViewProjection()
	for _, id := range s.worldRoots {
		s.drawNode(s.mustNode(id), pv, list)
	}
	for _, id := range s.canvasRoots {
		s.drawNode(s.mustNode(id), s.uiProjection, list)
	}
}

// drawNode composes n's global transform, submits its drawable and recurses.
// An inactive node skips its whole subtree.
func (s *Scene) drawNode(n *Node, parent mgl32.Mat4, list *DrawList) {
	if !n.Active {
		return
	}
	global := Compose(parent, n.Transform)
	if n.Drawable != nil {
		n.Drawable.Draw(list, global)
	}
	for _, c := range n.children {
		s.drawNode(s.mustNode(c), global, list)
	}
}

// Draw renders the scene into the scene's draw list and flushes it to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time

	if s.debug {
		t0 = time.Now()
	}

	s.list.Reset()
	s.Render(s.list)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = s.list.Len()
		t0 = time.Now()
	}

	s.list.Flush(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.nodeCount = s.live
		stats.listenerCount = len(s.listeners)
		s.debugLog(stats)
	}
}

// DrawList returns the commands produced by the last Draw.
func (s *Scene) DrawList() *DrawList {
	return s.list
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth
// warnings and per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Dispose destroys every node in the arena, attached or not, releasing each
// drawable once. Safe to call more than once.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	if s.OnDispose != nil {
		s.OnDispose(s)
	}
	s.listeners = nil
	s.worldRoots = nil
	s.canvasRoots = nil
	for i := range s.slots {
		if n := s.slots[i].node; n != nil {
			n.dispose()
			s.slots[i].node = nil
		}
	}
	s.slots = nil
	s.free = nil
	s.live = 0
	s.sink = nil
	s.list.Reset()
	s.disposed = true
	logger.Debug("scene disposed", "scene", s.Name)
}

// IsDisposed reports whether Dispose has been called.
func (s *Scene) IsDisposed() bool {
	return s.disposed
}
