package ludo

import "errors"

var (
	// ErrResource is returned when an asset cannot be opened or decoded.
	ErrResource = errors.New("ludo: resource error")

	// ErrGraphConsistency is returned when an operation would corrupt the
	// scene graph: stale or foreign node handles, self attachment or cycles.
	ErrGraphConsistency = errors.New("ludo: graph consistency error")

	// ErrNotListener is returned when a callback is added to a node that was
	// not created as an event listener.
	ErrNotListener = errors.New("ludo: node is not an event listener")

	// ErrNoScene is returned by SceneManager.Current when no scene is set.
	ErrNoScene = errors.New("ludo: no current scene")

	// ErrInvalidConfig is returned by RunConfig.Validate.
	ErrInvalidConfig = errors.New("ludo: invalid config")
)
