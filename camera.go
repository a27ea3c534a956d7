package ludo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default perspective parameters for DefaultCamera.
const (
	DefaultFieldOfView float32 = 45 // degrees
	DefaultNear        float32 = 0.01
	DefaultFar         float32 = 100
)

var (
	forwardAxis = mgl32.Vec3{0, 0, -1}
	upAxis      = mgl32.Vec3{0, 1, 0}
)

// moveAnim holds active move-to tweens for the three position axes.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a transform plus a projection matrix. The projection is fixed at
// construction; call Reproject after the aspect ratio changes.
type Camera struct {
	Transform  Transform
	Projection mgl32.Mat4

	fovY float32 // radians
	move *moveAnim
}

// DefaultCamera returns a camera one unit in front of the origin looking down
// -Z with a 45 degree vertical field of view.
func DefaultCamera(aspect float32) Camera {
	t := IdentityTransform()
	t.Position = mgl32.Vec3{0, 0, 1}
	return NewCamera(t, mgl32.DegToRad(DefaultFieldOfView), aspect)
}

// NewCamera returns a camera at t with a perspective projection. fovY is the
// vertical field of view in radians.
func NewCamera(t Transform, fovY, aspect float32) Camera {
	return Camera{
		Transform:  t,
		Projection: mgl32.Perspective(fovY, aspect, DefaultNear, DefaultFar),
		fovY:       fovY,
	}
}

// Reproject rebuilds the projection for a new aspect ratio, keeping the
// field of view.
func (c *Camera) Reproject(aspect float32) {
	c.Projection = mgl32.Perspective(c.fovY, aspect, DefaultNear, DefaultFar)
}

// ViewMatrix looks from the camera position along the rotated forward axis
// with the rotated up axis.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	pos := c.Transform.Position
	rot := c.Transform.Rotation
	forward := rot.Rotate(forwardAxis)
	up := rot.Rotate(upAxis)
	return mgl32.LookAtV(pos, pos.Add(forward), up)
}

// ViewProjection returns Projection * ViewMatrix.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.ViewMatrix())
}

// MoveTo animates the camera position to target over duration seconds.
// A running move is replaced.
func (c *Camera) MoveTo(target mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	from := c.Transform.Position
	anim := &moveAnim{}
	for i := range anim.tweens {
		anim.tweens[i] = gween.New(from[i], target[i], duration, easeFn)
	}
	c.move = anim
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// StopMove cancels a running MoveTo, leaving the camera where it is.
func (c *Camera) StopMove() {
	c.move = nil
}

// update advances the move animation. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	if c.move == nil {
		return
	}
	finished := true
	for i, tw := range c.move.tweens {
		if c.move.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		c.Transform.Position[i] = val
		c.move.done[i] = done
		if !done {
			finished = false
		}
	}
	if finished {
		c.move = nil
	}
}
