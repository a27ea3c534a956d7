// Package ludo is a small scene-graph and rendering core for 2D sprite games
// on [Ebitengine].
//
// Ludo provides the node hierarchy, transform composition, a perspective
// camera for world space, a fixed projection for canvas (UI) space, click
// hit-testing and the frame loop that ties them together.
//
// # Quick start
//
// Build a [Game] from a [RunConfig], give it a [Scene] and run it:
//
//	game, err := ludo.NewGame(ludo.DefaultRunConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := ludo.NewScene("menu", game.Viewport())
//	// ... add nodes ...
//	game.SetScene(scene)
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Scene graph
//
// Nodes live in an arena owned by their scene and are addressed by [NodeID]
// handles. Parent, child and listener relations are handles, never pointers,
// so a destroyed node can not be reached through a stale reference: every
// operation on a stale handle fails with [ErrGraphConsistency].
//
//	root := scene.NewNode("level")
//	scene.AddWorldRoot(root)
//
//	hero := scene.NewSpriteNode("hero", loader.MustLoad("hero.png"))
//	scene.Attach(root, hero)
//	scene.Node(hero).Transform.Position = mgl32.Vec3{0.2, 0, 0}
//
// Each node's global matrix is parent * T * R * S of its local [Transform].
// Setting Active to false hides a node and its whole subtree.
//
// # World and canvas
//
// World roots are drawn through the main camera (projection * view). Canvas
// roots are drawn through a projection fixed when the scene is created, so
// moving the camera never moves the UI.
//
// # Clicks
//
// Listener nodes ([Scene.NewListener], [Scene.NewButton]) own a list of
// callbacks and a 1x1 hit-box centered on their local origin. A press
// followed by a release fires every active listener under the pointer.
//
// # Scene changes
//
// [Game.SetScene] may be called from inside a callback. The outgoing scene
// stays alive until the frame ends and is then disposed, releasing every
// sprite it held.
//
// [Ebitengine]: https://ebitengine.org
package ludo
