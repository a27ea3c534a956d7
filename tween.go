package ludo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields of a node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenTransparency, TweenRotation) and call Update(dt) each frame, usually
// from Scene.OnUpdate. If the target node is destroyed, the group stops
// immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	apply  func(vals [4]float32)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. If the target node has been destroyed, Done is set to true
// and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	var vals [4]float32
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if g.fields[i] != nil {
			*g.fields[i] = val
		}
		if !finished {
			allDone = false
		}
	}
	if g.apply != nil {
		g.apply(vals)
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves node to the given local
// position over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(node.Transform.Position[i], to[i], duration, fn)
		g.fields[i] = &node.Transform.Position[i]
	}
	return g
}

// TweenScale creates a TweenGroup that animates node's local scale to the
// given value over the specified duration using the easing function.
func TweenScale(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(node.Transform.Scale[i], to[i], duration, fn)
		g.fields[i] = &node.Transform.Scale[i]
	}
	return g
}

// TweenTransparency creates a TweenGroup that fades the node's sprite to the
// target transparency. Panics if the node does not draw a *Sprite.
func TweenTransparency(node *Node, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	sp, ok := node.Drawable.(*Sprite)
	if !ok {
		panic("ludo: TweenTransparency on node " + node.Name + " without a sprite")
	}
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(sp.Transparency, to, duration, fn)
	g.fields[0] = &sp.Transparency
	return g
}

// TweenRotation creates a TweenGroup that turns node by angle radians about
// axis, starting from its current rotation.
func TweenRotation(node *Node, axis mgl32.Vec3, angle float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Transform.Rotation
	axis = axis.Normalize()
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(0, angle, duration, fn)
	g.apply = func(vals [4]float32) {
		node.Transform.Rotation = mgl32.QuatRotate(vals[0], axis).Mul(from)
	}
	return g
}
