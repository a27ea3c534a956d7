package ludo

import "time"

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	nodeCount     int
	listenerCount int
}

// debugLog logs timing and draw stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger.Debug("frame",
		"scene", s.Name,
		"traverse", stats.traverseTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.submitTime,
		"commands", stats.commandCount,
		"nodes", stats.nodeCount,
		"listeners", stats.listenerCount,
	)
}

// debugMaxTreeDepth is the depth above which attaching a node logs a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(s *Scene, n *Node) {
	depth := treeDepth(s, n)
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// treeDepth counts n and its ancestors.
func treeDepth(s *Scene, n *Node) int {
	depth := 1
	for p := n.parent; !p.IsZero(); {
		depth++
		p = s.mustNode(p).parent
	}
	return depth
}
