package ludo

// SceneManager holds the current scene and the scenes it replaced. Replacing
// a scene does not destroy the outgoing one: code still running inside its
// callbacks may keep using it until the frame ends and CleanupPrevious runs.
// Several replacements within one frame queue up; none of the outgoing scenes
// is disposed before CleanupPrevious.
//
// A SceneManager belongs to the frame-loop driver and is not safe for
// concurrent use.
type SceneManager struct {
	current *Scene
	retired []*Scene
}

// SetCurrent installs s as the current scene and queues the old current
// scene for disposal without disposing it.
func (m *SceneManager) SetCurrent(s *Scene) {
	// A retired scene coming back is live again.
	m.retired = removeScene(m.retired, s)
	if old := m.current; old != nil && old != s {
		m.retired = removeScene(m.retired, old)
		m.retired = append(m.retired, old)
	}
	m.current = s
	name := ""
	if s != nil {
		name = s.Name
	}
	logger.Info("scene changed", "scene", name, "pending", len(m.retired))
}

// CleanupPrevious disposes every queued scene except the current one and
// empties the queue. Call once per frame after draw and dispatch no longer
// need them.
func (m *SceneManager) CleanupPrevious() {
	if len(m.retired) == 0 {
		return
	}
	retired := m.retired
	m.retired = nil
	for i, s := range retired {
		retired[i] = nil
		if s == m.current {
			continue
		}
		s.Dispose()
	}
}

// Current returns the current scene, or ErrNoScene.
func (m *SceneManager) Current() (*Scene, error) {
	if m.current == nil {
		return nil, ErrNoScene
	}
	return m.current, nil
}

// Previous returns the most recently replaced scene awaiting cleanup, or nil.
func (m *SceneManager) Previous() *Scene {
	if len(m.retired) == 0 {
		return nil
	}
	return m.retired[len(m.retired)-1]
}

// NumPending returns the number of scenes awaiting cleanup.
func (m *SceneManager) NumPending() int {
	return len(m.retired)
}

// Shutdown disposes every scene and empties the manager.
func (m *SceneManager) Shutdown() {
	m.CleanupPrevious()
	if m.current != nil {
		m.current.Dispose()
		m.current = nil
	}
}

func removeScene(scenes []*Scene, s *Scene) []*Scene {
	for i, c := range scenes {
		if c == s {
			copy(scenes[i:], scenes[i+1:])
			scenes[len(scenes)-1] = nil
			return scenes[:len(scenes)-1]
		}
	}
	return scenes
}
