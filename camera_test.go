package ludo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func TestDefaultCamera(t *testing.T) {
	cam := DefaultCamera(1.25)
	if cam.Transform.Position != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Position = %v, want (0,0,1)", cam.Transform.Position)
	}
	if cam.Transform.Rotation != mgl32.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", cam.Transform.Rotation)
	}
	want := mgl32.Perspective(mgl32.DegToRad(45), 1.25, 0.01, 100)
	assertMat4(t, "Projection", cam.Projection, want)
}

func TestCameraViewMatrixDefault(t *testing.T) {
	cam := DefaultCamera(1)
	// The origin sits one unit in front of the camera.
	got := cam.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVec4(t, "origin in view space", got, mgl32.Vec4{0, 0, -1, 1})
}

func TestCameraViewMatrixRotated(t *testing.T) {
	cam := DefaultCamera(1)
	cam.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	// Turned 90 degrees left, the camera looks down -X.
	got := cam.ViewMatrix().Mul4x1(mgl32.Vec4{-1, 0, 1, 1})
	assertVec4(t, "point ahead", got, mgl32.Vec4{0, 0, -1, 1})
}

func TestCameraViewProjection(t *testing.T) {
	cam := DefaultCamera(1.5)
	cam.Transform.Position = mgl32.Vec3{2, -1, 4}
	want := cam.Projection.Mul4(cam.ViewMatrix())
	assertMat4(t, "ViewProjection", cam.ViewProjection(), want)
}

func TestCameraReproject(t *testing.T) {
	cam := DefaultCamera(1)
	cam.Reproject(2)
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.01, 100)
	assertMat4(t, "Projection", cam.Projection, want)
}

func TestNewCameraKeepsFieldOfView(t *testing.T) {
	fov := mgl32.DegToRad(60)
	cam := NewCamera(IdentityTransform(), fov, 1)
	cam.Reproject(0.5)
	assertMat4(t, "Projection", cam.Projection, mgl32.Perspective(fov, 0.5, DefaultNear, DefaultFar))
}

func TestCameraMoveTo(t *testing.T) {
	cam := DefaultCamera(1)
	cam.MoveTo(mgl32.Vec3{0, 0, 3}, 1, ease.Linear)
	if !cam.Moving() {
		t.Fatal("expected camera to be moving")
	}

	cam.update(0.5)
	if z := cam.Transform.Position.Z(); z < 1.99 || z > 2.01 {
		t.Errorf("z at half time = %v, want 2", z)
	}
	if !cam.Moving() {
		t.Error("move should still be running at half time")
	}

	cam.update(0.5)
	if cam.Transform.Position != (mgl32.Vec3{0, 0, 3}) {
		t.Errorf("Position = %v, want (0,0,3)", cam.Transform.Position)
	}
	if cam.Moving() {
		t.Error("move should be finished")
	}
}

func TestCameraStopMove(t *testing.T) {
	cam := DefaultCamera(1)
	cam.MoveTo(mgl32.Vec3{4, 0, 1}, 2, ease.Linear)
	cam.update(1)
	cam.StopMove()
	x := cam.Transform.Position.X()
	cam.update(1)
	if cam.Transform.Position.X() != x {
		t.Errorf("camera moved after StopMove: %v -> %v", x, cam.Transform.Position.X())
	}
}

func TestSceneUpdateAdvancesCamera(t *testing.T) {
	s := NewScene("cam", Viewport{Width: 100, Height: 100})
	s.MainCamera.MoveTo(mgl32.Vec3{1, 0, 1}, 1, ease.Linear)
	s.Update(1)
	if s.MainCamera.Transform.Position != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("Position = %v, want (1,0,1)", s.MainCamera.Transform.Position)
	}
}
