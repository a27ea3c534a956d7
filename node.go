package ludo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID is a handle to a node in a scene's arena. The zero value refers to
// no node. A handle goes stale when its node is destroyed; stale handles are
// rejected with ErrGraphConsistency instead of reaching a reused slot.
type NodeID struct {
	scene uint32
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool {
	return id.gen == 0
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d:%d.%d)", id.scene, id.index, id.gen)
}

// layer records which collection currently owns a node.
type layer uint8

const (
	layerDetached layer = iota // owned by the arena only
	layerChild                 // owned by its parent's children
	layerWorld                 // a world root
	layerCanvas                // a canvas root
)

// interactive is the event-listener capability: the callbacks fired when a
// click lands inside the node's unit hit-box.
type interactive struct {
	callbacks []func()
}

// Node is a positioned entity in the scene graph. Nodes are created by and
// live inside a Scene; relations to other nodes are NodeIDs.
type Node struct {
	Name string

	// Active false skips the node and its whole subtree when drawing, and
	// excludes a listener from event dispatch.
	Active bool

	// Transform is the local transform relative to the parent.
	Transform Transform

	// Drawable is drawn at the node's global transform. Nil draws nothing.
	// The node owns it: destroying the node releases it. Use
	// Scene.SetDrawable to replace it; assigning the field directly leaves
	// releasing the old drawable to the caller.
	Drawable Drawable

	id          NodeID
	scene       *Scene
	parent      NodeID
	children    []NodeID
	layer       layer
	interactive *interactive
	disposed    bool
}

// ID returns the node's handle.
func (n *Node) ID() NodeID {
	return n.id
}

// Scene returns the owning scene.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Parent returns the parent handle, or the zero NodeID for roots and
// detached nodes.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the child handles in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// IsListener reports whether the node was created as an event listener.
func (n *Node) IsListener() bool {
	return n.interactive != nil
}

// IsDisposed reports whether the node has been destroyed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Listen appends a callback fired when the node is clicked. Callbacks fire in
// registration order.
func (n *Node) Listen(fn func()) error {
	if n.interactive == nil {
		return fmt.Errorf("listen on %q: %w", n.Name, ErrNotListener)
	}
	if fn == nil {
		panic("ludo: cannot listen with nil callback")
	}
	n.interactive.callbacks = append(n.interactive.callbacks, fn)
	return nil
}

// NumCallbacks returns the number of registered callbacks.
func (n *Node) NumCallbacks() int {
	if n.interactive == nil {
		return 0
	}
	return len(n.interactive.callbacks)
}

// --- Arena ---

type slot struct {
	node *Node
	gen  uint32
}

// alloc places a new node in a free slot (or a new one) and returns it.
func (s *Scene) alloc(name string) *Node {
	var idx uint32
	if k := len(s.free); k > 0 {
		idx = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	sl := &s.slots[idx]
	sl.gen++
	n := &Node{
		Name:      name,
		Active:    true,
		Transform: IdentityTransform(),
		id:        NodeID{scene: s.serial, index: idx, gen: sl.gen},
		scene:     s,
	}
	sl.node = n
	s.live++
	return n
}

// freeSlot empties the node's slot. The next alloc of the slot bumps its
// generation, so the old handle never matches again. A slot whose generation
// is exhausted is retired instead of wrapping back to the zero handle.
func (s *Scene) freeSlot(n *Node) {
	sl := &s.slots[n.id.index]
	sl.node = nil
	if sl.gen < math.MaxUint32 {
		s.free = append(s.free, n.id.index)
	}
	s.live--
}

// lookup resolves id, rejecting zero, foreign and stale handles.
func (s *Scene) lookup(id NodeID) (*Node, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: zero node handle", ErrGraphConsistency)
	}
	if id.scene != s.serial {
		return nil, fmt.Errorf("%w: %v belongs to another scene", ErrGraphConsistency, id)
	}
	if int(id.index) >= len(s.slots) {
		return nil, fmt.Errorf("%w: %v out of range", ErrGraphConsistency, id)
	}
	sl := s.slots[id.index]
	if sl.node == nil || sl.gen != id.gen {
		return nil, fmt.Errorf("%w: %v is stale", ErrGraphConsistency, id)
	}
	return sl.node, nil
}

// mustNode resolves an internal reference. A failure means the arena itself
// is corrupt.
func (s *Scene) mustNode(id NodeID) *Node {
	n, err := s.lookup(id)
	if err != nil {
		panic("ludo: dangling reference: " + err.Error())
	}
	return n
}

// --- Construction ---

// NewNode creates a detached node owned by the scene.
func (s *Scene) NewNode(name string) NodeID {
	return s.alloc(name).id
}

// NewSpriteNode creates a detached node drawing d.
func (s *Scene) NewSpriteNode(name string, d Drawable) NodeID {
	n := s.alloc(name)
	n.Drawable = d
	return n.id
}

// NewListener creates a detached event-listener node and registers it in the
// scene's listener index.
func (s *Scene) NewListener(name string, callbacks ...func()) NodeID {
	n := s.alloc(name)
	n.interactive = &interactive{}
	for _, fn := range callbacks {
		_ = n.Listen(fn)
	}
	s.listeners = append(s.listeners, n.id)
	return n.id
}

// NewButton creates a listener that also draws d.
func (s *Scene) NewButton(name string, d Drawable, onClick ...func()) NodeID {
	id := s.NewListener(name, onClick...)
	s.slots[id.index].node.Drawable = d
	return id
}

// SetDrawable replaces the drawable of id, releasing the old one unless it
// is d itself. A nil d clears it.
func (s *Scene) SetDrawable(id NodeID, d Drawable) error {
	n, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("set drawable: %w", err)
	}
	if old := n.Drawable; old != nil && old != d {
		old.Release()
	}
	n.Drawable = d
	return nil
}

// Node returns the node for id, or nil if id is zero, stale or belongs to
// another scene.
func (s *Scene) Node(id NodeID) *Node {
	n, err := s.lookup(id)
	if err != nil {
		return nil
	}
	return n
}

// Lookup is like Node but reports why id could not be resolved.
func (s *Scene) Lookup(id NodeID) (*Node, error) {
	return s.lookup(id)
}

// NumNodes returns the number of live nodes in the arena.
func (s *Scene) NumNodes() int {
	return s.live
}

// --- Tree manipulation ---

// Attach makes child the last child of parent. If child already has a
// parent or is a root, it is detached from there first. Attaching a node to
// itself or to one of its descendants returns ErrGraphConsistency.
func (s *Scene) Attach(parent, child NodeID) error {
	p, err := s.lookup(parent)
	if err != nil {
		return fmt.Errorf("attach parent: %w", err)
	}
	c, err := s.lookup(child)
	if err != nil {
		return fmt.Errorf("attach child: %w", err)
	}
	if s.isAncestor(c, p) {
		return fmt.Errorf("%w: attaching %q under %q would create a cycle", ErrGraphConsistency, c.Name, p.Name)
	}
	s.detach(c)
	c.parent = p.id
	c.layer = layerChild
	p.children = append(p.children, c.id)
	if s.debug {
		debugCheckTreeDepth(s, c)
	}
	return nil
}

// AddWorldRoot appends id to the world-space roots, detaching it first.
func (s *Scene) AddWorldRoot(id NodeID) error {
	n, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("add world root: %w", err)
	}
	s.detach(n)
	n.layer = layerWorld
	s.worldRoots = append(s.worldRoots, n.id)
	return nil
}

// AddCanvasRoot appends id to the canvas-space roots, detaching it first.
func (s *Scene) AddCanvasRoot(id NodeID) error {
	n, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("add canvas root: %w", err)
	}
	s.detach(n)
	n.layer = layerCanvas
	s.canvasRoots = append(s.canvasRoots, n.id)
	return nil
}

// Detach removes id from its parent or root list without destroying it.
// The node stays in the arena and can be attached again.
func (s *Scene) Detach(id NodeID) error {
	n, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("detach: %w", err)
	}
	s.detach(n)
	return nil
}

// Destroy detaches id and destroys it with its whole subtree. Every listener
// in the subtree leaves the listener index before any node is torn down, and
// every drawable is released once.
func (s *Scene) Destroy(id NodeID) error {
	n, err := s.lookup(id)
	if err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	s.detach(n)
	s.deregisterSubtree(n)
	s.destroySubtree(n)
	return nil
}

// WorldRoots returns the world root handles. The returned slice MUST NOT be mutated.
func (s *Scene) WorldRoots() []NodeID {
	return s.worldRoots
}

// CanvasRoots returns the canvas root handles. The returned slice MUST NOT be mutated.
func (s *Scene) CanvasRoots() []NodeID {
	return s.canvasRoots
}

// Listeners returns the listener index. The returned slice MUST NOT be mutated.
func (s *Scene) Listeners() []NodeID {
	return s.listeners
}

// GlobalMatrix composes the local transforms from the root down to id,
// starting from root.
func (s *Scene) GlobalMatrix(id NodeID, root mgl32.Mat4) (mgl32.Mat4, error) {
	n, err := s.lookup(id)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	chain := []*Node{n}
	for p := n.parent; !p.IsZero(); {
		pn := s.mustNode(p)
		chain = append(chain, pn)
		p = pn.parent
	}
	m := root
	for i := len(chain) - 1; i >= 0; i-- {
		m = Compose(m, chain[i].Transform)
	}
	return m, nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func (s *Scene) isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; {
		if p == candidate {
			return true
		}
		if p.parent.IsZero() {
			return false
		}
		p = s.mustNode(p.parent)
	}
	return false
}

// detach removes n from whichever collection owns it.
func (s *Scene) detach(n *Node) {
	switch n.layer {
	case layerChild:
		p := s.mustNode(n.parent)
		p.children = removeID(p.children, n.id)
	case layerWorld:
		s.worldRoots = removeID(s.worldRoots, n.id)
	case layerCanvas:
		s.canvasRoots = removeID(s.canvasRoots, n.id)
	}
	n.parent = NodeID{}
	n.layer = layerDetached
}

func (s *Scene) deregisterSubtree(n *Node) {
	if n.interactive != nil {
		s.listeners = removeID(s.listeners, n.id)
	}
	for _, c := range n.children {
		s.deregisterSubtree(s.mustNode(c))
	}
}

func (s *Scene) destroySubtree(n *Node) {
	for _, c := range n.children {
		s.destroySubtree(s.mustNode(c))
	}
	n.dispose()
	s.freeSlot(n)
}

// dispose releases the node's drawable and clears its references.
func (n *Node) dispose() {
	if n.Drawable != nil {
		n.Drawable.Release()
		n.Drawable = nil
	}
	n.disposed = true
	n.children = nil
	n.parent = NodeID{}
	n.interactive = nil
	n.layer = layerDetached
	n.scene = nil
}

// removeID removes id from ids preserving order. Uses copy+zero so the backing
// array does not retain the handle.
func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			copy(ids[i:], ids[i+1:])
			ids[len(ids)-1] = NodeID{}
			return ids[:len(ids)-1]
		}
	}
	return ids
}
