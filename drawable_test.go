package ludo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestProjectQuadIdentity(t *testing.T) {
	pts, ok := projectQuad(mgl32.Ident4(), 100, 100)
	if !ok {
		t.Fatal("identity quad rejected")
	}
	want := [4]mgl32.Vec2{{25, 25}, {75, 25}, {75, 75}, {25, 75}}
	for i := range want {
		if !pts[i].ApproxEqualThreshold(want[i], epsilon) {
			t.Errorf("corner %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestProjectQuadUIProjection(t *testing.T) {
	// A unit quad scaled to 2x2 fills the height of a landscape screen.
	s := NewScene("s", Viewport{Width: 1000, Height: 800})
	m := s.UIProjection().Mul4(mgl32.Scale3D(2, 2, 1))
	pts, ok := projectQuad(m, 1000, 800)
	if !ok {
		t.Fatal("quad rejected")
	}
	want := [4]mgl32.Vec2{{100, 0}, {900, 0}, {900, 800}, {100, 800}}
	for i := range want {
		if !pts[i].ApproxEqualThreshold(want[i], 1e-3) {
			t.Errorf("corner %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestProjectQuadBehindCamera(t *testing.T) {
	m := mgl32.Ident4()
	m[15] = -1
	if _, ok := projectQuad(m, 100, 100); ok {
		t.Error("quad with negative w should be rejected")
	}

	cam := DefaultCamera(1)
	behind := cam.ViewProjection().Mul4(mgl32.Translate3D(0, 0, 2))
	if _, ok := projectQuad(behind, 100, 100); ok {
		t.Error("quad behind the camera should be rejected")
	}
	front := cam.ViewProjection()
	if _, ok := projectQuad(front, 100, 100); !ok {
		t.Error("quad in front of the camera should be accepted")
	}
}

func TestSpriteDraw(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	sp := NewSprite(img)
	sp.Transparency = 0.5
	list := NewDrawList()
	m := mgl32.Translate3D(1, 2, 3)
	sp.Draw(list, m)

	if list.Len() != 1 {
		t.Fatalf("Len = %d, want 1", list.Len())
	}
	cmd := list.Commands()[0]
	if cmd.Image != img {
		t.Error("command image mismatch")
	}
	if cmd.Transparency != 0.5 {
		t.Errorf("Transparency = %v, want 0.5", cmd.Transparency)
	}
	assertMat4(t, "Transform", cmd.Transform, m)
}

func TestSpriteRelease(t *testing.T) {
	sp := NewSprite(ebiten.NewImage(2, 2))
	if sp.Path() != "" {
		t.Errorf("Path = %q, want empty", sp.Path())
	}
	sp.Release()
	sp.Release()
	if !sp.IsReleased() {
		t.Error("IsReleased = false")
	}
	if sp.Image() != nil {
		t.Error("released sprite still holds its image")
	}
}

func TestDrawListReset(t *testing.T) {
	list := NewDrawList()
	list.Submit(DrawCommand{Transparency: 1})
	list.Submit(DrawCommand{Transparency: 1})
	list.Reset()
	if list.Len() != 0 {
		t.Errorf("Len = %d after Reset", list.Len())
	}
}

func TestDrawListFlush(t *testing.T) {
	target := ebiten.NewImage(16, 16)
	list := NewDrawList()
	list.Submit(DrawCommand{Transform: mgl32.Ident4(), Transparency: 1})
	behind := mgl32.Ident4()
	behind[15] = 0
	list.Submit(DrawCommand{Transform: behind, Transparency: 1})
	list.Flush(target)
	if list.Len() != 2 {
		t.Error("Flush should not consume commands")
	}
}

func TestViewportNDC(t *testing.T) {
	vp := Viewport{Width: 200, Height: 100}
	assertVec4(t, "center", vp.NDC(100, 50), pt(0, 0))
	assertVec4(t, "top left", vp.NDC(0, 0), pt(-1, 1))
	assertVec4(t, "bottom right", vp.NDC(200, 100), pt(1, -1))
	if a := vp.AspectRatio(); a != 2 {
		t.Errorf("AspectRatio = %v, want 2", a)
	}
}
