package ludo

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game drives the frame loop. It implements ebiten.Game and owns the scene
// manager, the pointer reader and the queue of injected input.
//
// Each tick: injected or real pointer state is dispatched to the current
// scene, then the scene updates. Each draw: the screen is cleared, the
// current scene is drawn, and every scene a callback replaced during the
// frame is disposed.
type Game struct {
	cfg    RunConfig
	scenes SceneManager
	reader pointerReader

	injectQueue     []PointerState
	script          *ScriptRunner
	screenshotQueue []string

	// Loader, when set, has its hot-reload queue drained every tick.
	Loader *Loader
}

// NewGame validates cfg and returns a game with no scene.
func NewGame(cfg RunConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LogLevel != "" {
		if err := SetLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return &Game{cfg: cfg}, nil
}

// Config returns the game's configuration.
func (g *Game) Config() RunConfig {
	return g.cfg
}

// Viewport returns the logical screen size scenes should be built for.
func (g *Game) Viewport() Viewport {
	return g.cfg.Viewport()
}

// Scenes returns the scene manager.
func (g *Game) Scenes() *SceneManager {
	return &g.scenes
}

// SetScene makes s the current scene. The outgoing scene is disposed at the
// end of the frame. With Debug set in the config, s also logs frame stats
// and gets an FPS counter.
func (g *Game) SetScene(s *Scene) {
	if s != nil && g.cfg.Debug && !s.debug {
		s.SetDebugMode(true)
		s.AddFPSCounter()
	}
	g.scenes.SetCurrent(s)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.Loader != nil {
		g.Loader.Poll()
	}
	if g.script != nil {
		g.script.step(g)
	}
	var p PointerState
	if !g.popInjected(&p) {
		p = g.reader.read()
	}
	g.tick(p, 1/float64(ebiten.TPS()))
	return nil
}

// tick dispatches one frame of pointer state and updates the current scene.
// Dispatch happens before update so callbacks see this frame's graph.
func (g *Game) tick(p PointerState, dt float64) {
	s, err := g.scenes.Current()
	if err != nil {
		return
	}
	s.DispatchEvents(p)
	// A callback may have replaced the scene; update whichever is current now.
	if s, err = g.scenes.Current(); err != nil {
		return
	}
	s.Update(dt)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	if s, err := g.scenes.Current(); err == nil {
		s.Draw(screen)
	}
	g.flushScreenshots(screen)
	g.endFrame()
}

// endFrame disposes the scene replaced during this frame.
func (g *Game) endFrame() {
	g.scenes.CleanupPrevious()
}

// Layout implements ebiten.Game. The logical size is fixed by the config.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until the game exits. A current scene must
// be set first. Both scenes are disposed on return.
func (g *Game) Run() error {
	if _, err := g.scenes.Current(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	logger.Info("starting", "title", g.cfg.Title, "width", g.cfg.Width, "height", g.cfg.Height)
	defer g.scenes.Shutdown()
	return ebiten.RunGame(g)
}
