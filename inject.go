package ludo

// InjectPress queues a pointer press at the given screen coordinates. The
// event replaces real input on the next frame.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, PointerState{X: x, Y: y, Pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, PointerState{X: x, Y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// PendingInjected returns the number of queued synthetic events.
func (g *Game) PendingInjected() int {
	return len(g.injectQueue)
}

// popInjected pops one event from the inject queue into p.
// Returns true if an event was consumed (real input should be skipped).
func (g *Game) popInjected(p *PointerState) bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	*p = g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	return true
}
