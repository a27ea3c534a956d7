package ludo

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to Ebitengine.
type Color struct {
	R float64 `toml:"r"`
	G float64 `toml:"g"`
	B float64 `toml:"b"`
	A float64 `toml:"a"`
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default clear color.
var ColorBlack = Color{0, 0, 0, 1}

// WhitePixel is a 1x1 white image used for sprites without a texture.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// toRGBA converts a Color to a color.RGBA (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Viewport is the size of the render target in pixels.
type Viewport struct {
	Width, Height int
}

// AspectRatio returns width / height. A degenerate viewport reports 1.
func (v Viewport) AspectRatio() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// NDC maps a pixel position to normalized device coordinates in [-1, 1].
// Screen-space y grows downward while device y grows upward, so y is flipped.
func (v Viewport) NDC(px, py float64) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(px*2/float64(v.Width) - 1),
		float32(-(py*2)/float64(v.Height) + 1),
		0,
		1,
	}
}

// PointerState is the primary pointer as seen by one frame: position in
// pixels and whether the primary button (or a touch) is held.
type PointerState struct {
	X, Y    float64
	Pressed bool
}
