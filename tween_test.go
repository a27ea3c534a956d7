package ludo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	s := newTestScene()
	n := s.Node(s.NewNode("n"))
	g := TweenPosition(n, mgl32.Vec3{2, -4, 1}, 1, ease.Linear)

	g.Update(0.5)
	if !n.Transform.Position.ApproxEqualThreshold(mgl32.Vec3{1, -2, 0.5}, epsilon) {
		t.Errorf("Position at half time = %v", n.Transform.Position)
	}
	if g.Done {
		t.Error("Done too early")
	}
	g.Update(0.5)
	if n.Transform.Position != (mgl32.Vec3{2, -4, 1}) {
		t.Errorf("Position = %v, want (2,-4,1)", n.Transform.Position)
	}
	if !g.Done {
		t.Error("expected Done")
	}
}

func TestTweenScale(t *testing.T) {
	s := newTestScene()
	n := s.Node(s.NewNode("n"))
	g := TweenScale(n, mgl32.Vec3{3, 3, 1}, 0.5, ease.Linear)
	g.Update(1)
	if n.Transform.Scale != (mgl32.Vec3{3, 3, 1}) {
		t.Errorf("Scale = %v, want (3,3,1)", n.Transform.Scale)
	}
}

func TestTweenTransparency(t *testing.T) {
	s := newTestScene()
	sp := NewSprite(nil)
	n := s.Node(s.NewSpriteNode("n", sp))
	g := TweenTransparency(n, 0, 1, ease.Linear)
	g.Update(0.25)
	if math.Abs(float64(sp.Transparency-0.75)) > epsilon {
		t.Errorf("Transparency = %v, want 0.75", sp.Transparency)
	}

	plain := s.Node(s.NewNode("plain"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for node without sprite")
		}
	}()
	TweenTransparency(plain, 0, 1, ease.Linear)
}

func TestTweenRotation(t *testing.T) {
	s := newTestScene()
	n := s.Node(s.NewNode("n"))
	g := TweenRotation(n, mgl32.Vec3{0, 0, 2}, mgl32.DegToRad(90), 1, ease.Linear)
	g.Update(1)
	got := n.Transform.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, epsilon) {
		t.Errorf("rotated x axis = %v, want (0,1,0)", got)
	}
	if !g.Done {
		t.Error("expected Done")
	}
}

func TestTweenStopsOnDestroy(t *testing.T) {
	s := newTestScene()
	id := s.NewNode("n")
	n := s.Node(id)
	g := TweenPosition(n, mgl32.Vec3{10, 0, 0}, 1, ease.Linear)
	g.Update(0.1)
	x := n.Transform.Position.X()

	s.Destroy(id)
	g.Update(0.1)
	if !g.Done {
		t.Error("group should stop when its node is destroyed")
	}
	if n.Transform.Position.X() != x {
		t.Error("tween wrote to a destroyed node")
	}
}
