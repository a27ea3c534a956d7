package ludo

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 500 * time.Millisecond

// FPSCounter is a Drawable that displays the current FPS and TPS. The text is
// redrawn into its own image every ~0.5 seconds.
type FPSCounter struct {
	img       *ebiten.Image
	sprite    *Sprite
	lastDrawn time.Time
	refreshes int
}

// NewFPSCounter creates an FPS counter drawable.
func NewFPSCounter() *FPSCounter {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)
	return &FPSCounter{img: img, sprite: NewSprite(img)}
}

// Draw implements Drawable.
func (f *FPSCounter) Draw(list *DrawList, global mgl32.Mat4) {
	if f.img == nil {
		return
	}
	if now := time.Now(); now.Sub(f.lastDrawn) >= fpsRefreshInterval {
		f.lastDrawn = now
		f.refresh()
	}
	f.sprite.Draw(list, global)
}

func (f *FPSCounter) refresh() {
	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	f.refreshes++
}

// Release implements Drawable. The counter owns its image.
func (f *FPSCounter) Release() {
	if f.img == nil {
		return
	}
	f.sprite.Release()
	f.img.Deallocate()
	f.img = nil
}

// AddFPSCounter places an FPS counter in the top-left corner of the canvas
// and returns its node.
func (s *Scene) AddFPSCounter() NodeID {
	const w, h = 0.5, 0.16
	id := s.NewSpriteNode("fps", NewFPSCounter())
	tl := s.ScreenToCanvas(0, 0)
	s.Node(id).Transform.Position = mgl32.Vec3{tl.X() + w/2, tl.Y() - h/2, 0}
	s.Node(id).Transform.Scale = mgl32.Vec3{w, h, 1}
	_ = s.AddCanvasRoot(id)
	return id
}
