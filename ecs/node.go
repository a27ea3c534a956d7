package ecs

import (
	"github.com/phanxgames/ludo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// NodeRef links an entity to a scene-graph node. Systems resolve it each
// frame rather than caching the *ludo.Node, so a destroyed node is noticed.
type NodeRef struct {
	Scene *ludo.Scene
	ID    ludo.NodeID
}

// NodeComponent is the Donburi component holding a NodeRef.
var NodeComponent = donburi.NewComponentType[NodeRef]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// BindNode creates an entity referring to node id of scene.
func BindNode(world donburi.World, scene *ludo.Scene, id ludo.NodeID) donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(e), NodeRef{Scene: scene, ID: id})
	return e
}

// Node resolves the node bound to entry, or nil if the entry has no NodeRef
// or its node is gone.
func Node(entry *donburi.Entry) *ludo.Node {
	if !entry.HasComponent(NodeComponent) {
		return nil
	}
	ref := NodeComponent.Get(entry)
	if ref.Scene == nil || ref.Scene.IsDisposed() {
		return nil
	}
	return ref.Scene.Node(ref.ID)
}

// EachNode calls fn for every entity whose node is still alive.
func EachNode(world donburi.World, fn func(entry *donburi.Entry, n *ludo.Node)) {
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if n := Node(entry); n != nil {
			fn(entry, n)
		}
	})
}

// PruneNodes removes every entity whose node was destroyed or whose scene was
// disposed, and returns how many were removed.
func PruneNodes(world donburi.World) int {
	var stale []donburi.Entity
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if Node(entry) == nil {
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		world.Remove(e)
	}
	return len(stale)
}
