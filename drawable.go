package ludo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Drawable is a renderable resource bound to a node. Draw submits the
// resource at the given global transform; Release gives the resource back to
// whoever loaded it and must be safe to call more than once.
type Drawable interface {
	Draw(list *DrawList, global mgl32.Mat4)
	Release()
}

// DrawCommand is a single draw instruction: a textured unit quad centered on
// the origin, transformed into clip space by Transform.
type DrawCommand struct {
	Image        *ebiten.Image // nil draws a white quad
	Transform    mgl32.Mat4
	Transparency float32
}

// Sprite is a textured unit quad. Sprites returned by a Loader share the
// decoded texture and give their reference back on Release.
type Sprite struct {
	// Transparency multiplies the texture alpha. 1 is fully opaque.
	Transparency float32

	image    *ebiten.Image
	tex      *texture
	loader   *Loader
	released bool
}

// NewSprite wraps an image the caller owns. A nil image draws a white quad.
func NewSprite(img *ebiten.Image) *Sprite {
	return &Sprite{Transparency: 1, image: img}
}

// Image returns the texture drawn by the sprite, or nil for a white quad.
func (s *Sprite) Image() *ebiten.Image {
	if s.tex != nil {
		return s.tex.image
	}
	return s.image
}

// Path returns the path the sprite was loaded from, or "" for wrapped images.
func (s *Sprite) Path() string {
	if s.tex != nil {
		return s.tex.path
	}
	return ""
}

// Draw implements Drawable.
func (s *Sprite) Draw(list *DrawList, global mgl32.Mat4) {
	list.Submit(DrawCommand{
		Image:        s.Image(),
		Transform:    global,
		Transparency: s.Transparency,
	})
}

// Release implements Drawable. Only the first call has an effect.
func (s *Sprite) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.loader != nil && s.tex != nil {
		s.loader.release(s.tex)
	}
	s.tex = nil
	s.image = nil
}

// IsReleased reports whether Release has been called.
func (s *Sprite) IsReleased() bool {
	return s.released
}

const defaultCommandCap = 256

// DrawList is the per-frame list of draw commands produced by a scene
// traversal. Flush submits it to an Ebitengine image.
type DrawList struct {
	commands []DrawCommand
	verts    [4]ebiten.Vertex
}

// NewDrawList returns an empty draw list.
func NewDrawList() *DrawList {
	return &DrawList{commands: make([]DrawCommand, 0, defaultCommandCap)}
}

// Submit appends a command.
func (l *DrawList) Submit(cmd DrawCommand) {
	l.commands = append(l.commands, cmd)
}

// Commands returns the recorded commands. The returned slice MUST NOT be mutated.
func (l *DrawList) Commands() []DrawCommand {
	return l.commands
}

// Len returns the number of recorded commands.
func (l *DrawList) Len() int {
	return len(l.commands)
}

// Reset clears the list, keeping its capacity.
func (l *DrawList) Reset() {
	clear(l.commands)
	l.commands = l.commands[:0]
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// quadCorners are the unit quad corners in local space: TL, TR, BR, BL.
var quadCorners = [4]mgl32.Vec4{
	{-0.5, 0.5, 0, 1},
	{0.5, 0.5, 0, 1},
	{0.5, -0.5, 0, 1},
	{-0.5, -0.5, 0, 1},
}

// projectQuad transforms the unit quad by m, divides by w and maps the result
// to target pixels. ok is false when any corner is on or behind the eye plane.
func projectQuad(m mgl32.Mat4, width, height float32) (pts [4]mgl32.Vec2, ok bool) {
	for i, c := range quadCorners {
		clip := m.Mul4x1(c)
		w := clip.W()
		if w <= 1e-6 {
			return pts, false
		}
		ndcX := clip.X() / w
		ndcY := clip.Y() / w
		pts[i] = mgl32.Vec2{
			(ndcX + 1) / 2 * width,
			(1 - ndcY) / 2 * height,
		}
	}
	return pts, true
}

// Flush draws every command onto target in submission order.
func (l *DrawList) Flush(target *ebiten.Image) {
	b := target.Bounds()
	tw, th := float32(b.Dx()), float32(b.Dy())

	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterLinear
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha

	for i := range l.commands {
		cmd := &l.commands[i]
		pts, ok := projectQuad(cmd.Transform, tw, th)
		if !ok {
			continue
		}
		img := cmd.Image
		if img == nil {
			img = WhitePixel
		}
		ib := img.Bounds()
		x0, y0 := float32(ib.Min.X), float32(ib.Min.Y)
		x1, y1 := float32(ib.Max.X), float32(ib.Max.Y)
		src := [4]mgl32.Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		for j := range l.verts {
			l.verts[j] = ebiten.Vertex{
				DstX:   pts[j].X() + float32(b.Min.X),
				DstY:   pts[j].Y() + float32(b.Min.Y),
				SrcX:   src[j].X(),
				SrcY:   src[j].Y(),
				ColorR: 1,
				ColorG: 1,
				ColorB: 1,
				ColorA: cmd.Transparency,
			}
		}
		target.DrawTriangles(l.verts[:], quadIndices, img, &op)
	}
}
