package ludo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func render(s *Scene) *DrawList {
	list := NewDrawList()
	s.Render(list)
	return list
}

func TestUIProjection(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want mgl32.Mat4
	}{
		{"landscape", Viewport{Width: 1000, Height: 800}, mgl32.Scale3D(0.8, 1, 1)},
		{"portrait", Viewport{Width: 800, Height: 1000}, mgl32.Scale3D(1, 0.8, 1)},
		{"square", Viewport{Width: 500, Height: 500}, mgl32.Ident4()},
		{"degenerate", Viewport{}, mgl32.Ident4()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(tt.name, tt.vp)
			assertMat4(t, "UIProjection", s.UIProjection(), tt.want)
		})
	}
}

func TestNewSceneCamera(t *testing.T) {
	s := NewScene("s", Viewport{Width: 1000, Height: 800})
	want := mgl32.Perspective(mgl32.DegToRad(45), 1.25, 0.01, 100)
	assertMat4(t, "camera projection", s.MainCamera.Projection, want)
}

func TestRenderComposesHierarchy(t *testing.T) {
	s := newTestScene()
	root := s.NewSpriteNode("root", &countingDrawable{})
	child := s.NewSpriteNode("child", &countingDrawable{})
	s.AddCanvasRoot(root)
	mustAttach(t, s, root, child)
	s.Node(root).Transform.Position = mgl32.Vec3{1, 0, 0}
	s.Node(child).Transform.Position = mgl32.Vec3{0, 1, 0}

	list := render(s)
	if list.Len() != 2 {
		t.Fatalf("commands = %d, want 2", list.Len())
	}
	ui := s.UIProjection()
	assertMat4(t, "root", list.Commands()[0].Transform, ui.Mul4(mgl32.Translate3D(1, 0, 0)))
	assertMat4(t, "child", list.Commands()[1].Transform, ui.Mul4(mgl32.Translate3D(1, 1, 0)))
}

func TestRenderWorldUsesCamera(t *testing.T) {
	s := newTestScene()
	w := s.NewSpriteNode("w", &countingDrawable{})
	s.AddWorldRoot(w)
	s.Node(w).Transform.Position = mgl32.Vec3{0.5, 0, 0}

	list := render(s)
	want := s.MainCamera.ViewProjection().Mul4(mgl32.Translate3D(0.5, 0, 0))
	assertMat4(t, "world", list.Commands()[0].Transform, want)
}

func TestCanvasIgnoresCamera(t *testing.T) {
	s := newTestScene()
	w := s.NewSpriteNode("world", &countingDrawable{})
	c := s.NewSpriteNode("canvas", &countingDrawable{})
	s.AddWorldRoot(w)
	s.AddCanvasRoot(c)

	before := render(s).Commands()
	s.MainCamera.Transform.Position = mgl32.Vec3{3, 2, 5}
	after := render(s).Commands()

	// World roots draw first, canvas roots second.
	if before[0].Transform.ApproxEqualThreshold(after[0].Transform, epsilon) {
		t.Error("world transform should follow the camera")
	}
	assertMat4(t, "canvas", after[1].Transform, before[1].Transform)
}

func TestInactiveSubtreeNotDrawn(t *testing.T) {
	s := newTestScene()
	root := s.NewSpriteNode("root", &countingDrawable{})
	child := s.NewSpriteNode("child", &countingDrawable{})
	grandchild := s.NewSpriteNode("grandchild", &countingDrawable{})
	s.AddWorldRoot(root)
	mustAttach(t, s, root, child)
	mustAttach(t, s, child, grandchild)

	s.Node(child).Active = false
	if n := render(s).Len(); n != 1 {
		t.Errorf("commands = %d, want 1", n)
	}
	s.Node(root).Active = false
	if n := render(s).Len(); n != 0 {
		t.Errorf("commands = %d, want 0", n)
	}
}

func TestDetachedNodeNotDrawn(t *testing.T) {
	s := newTestScene()
	d := &countingDrawable{}
	s.NewSpriteNode("loose", d)
	render(s)
	if d.draws != 0 {
		t.Errorf("draws = %d, want 0", d.draws)
	}
}

func TestSceneDispose(t *testing.T) {
	s := newTestScene()
	attached := &countingDrawable{}
	loose := &countingDrawable{}
	canvas := &countingDrawable{}
	root := s.NewSpriteNode("root", attached)
	s.AddWorldRoot(root)
	s.NewSpriteNode("loose", loose)
	btn := s.NewButton("btn", canvas, func() {})
	s.AddCanvasRoot(btn)

	disposed := 0
	s.OnDispose = func(*Scene) { disposed++ }

	s.Dispose()
	s.Dispose()

	if !s.IsDisposed() {
		t.Error("IsDisposed = false")
	}
	if disposed != 1 {
		t.Errorf("OnDispose ran %d times, want 1", disposed)
	}
	for name, d := range map[string]*countingDrawable{"attached": attached, "loose": loose, "canvas": canvas} {
		if d.releases != 1 {
			t.Errorf("%s releases = %d, want 1", name, d.releases)
		}
	}
	if s.NumNodes() != 0 || len(s.Listeners()) != 0 {
		t.Error("disposed scene still holds nodes")
	}
	if s.Node(root) != nil {
		t.Error("handle resolved after dispose")
	}
	if render(s).Len() != 0 {
		t.Error("disposed scene rendered commands")
	}
}

func TestSceneUpdateHooks(t *testing.T) {
	s := newTestScene()
	var order []string
	var gotDt float64
	s.OnUpdate = func(_ *Scene, dt float64) {
		order = append(order, "update")
		gotDt = dt
	}
	s.OnLateUpdate = func(*Scene, float64) { order = append(order, "late") }

	s.Update(0.25)
	if len(order) != 2 || order[0] != "update" || order[1] != "late" {
		t.Errorf("order = %v", order)
	}
	if gotDt != 0.25 {
		t.Errorf("dt = %v, want 0.25", gotDt)
	}

	s.Dispose()
	s.Update(0.25)
	if len(order) != 2 {
		t.Error("hooks ran on a disposed scene")
	}
}

func TestSceneSerialsDiffer(t *testing.T) {
	a := newTestScene()
	b := newTestScene()
	if a.serial == b.serial {
		t.Error("scenes share a serial")
	}
}
