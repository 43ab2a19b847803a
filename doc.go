// Package town renders an isometric town of buildings and walking agents
// for [Ebitengine].
//
// A [Town] owns a [Camera] that maps grid tiles to screen pixels, a
// [TileMap] of roads and grass, and an [EntityManager] of [Building] and
// [Character] entities drawn in depth order. A controller drives the
// characters through [AgentUpdate] values: set an animation state, walk to
// a building or tile, show a speech bubble, or change the time of day.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := town.LoadSceneConfig(sceneJSON)
//	if err != nil { ... }
//	t, err := town.New(cfg, town.Textures{})
//	if err != nil { ... }
//	town.Run(t, town.RunConfig{Title: "Town", Width: 1280, Height: 720})
//
// [Town] implements [ebiten.Game], so it can also be embedded in an
// existing game loop.
//
// # Projection
//
// Three projections are supported: diamond (tile (0,0) is the apex of a
// rotated square), staggered (row-offset diamonds filling a rectangle), and
// orthogonal. Grid positions are the source of truth; screen positions and
// depth are derived. Zoom and pan fold into the projection, so every screen
// coordinate the package reports is final.
//
// # Movement
//
// [Character.MoveTo] returns a [MoveHandle] that settles exactly once: on
// arrival, when superseded by a newer move, or when cancelled. Handles can
// be waited on from any goroutine:
//
//	h := c.MoveToGrid(4, 7, 0) // automatic duration
//	if err := h.Wait(ctx); errors.Is(err, town.ErrMoveSuperseded) { ... }
//
// # Controllers
//
// Updates reach the tick through an [UpdateSource]. [UpdateQueue] accepts
// updates from any goroutine; the town/ecs module adapts a [Donburi] world.
//
// # Textures
//
// Texture providers are injected per entity through [Textures]. [Atlas]
// implements all three provider interfaces from TexturePacker pages. Every
// lookup may miss: characters fall back from direction sheets to the nearest
// cardinal, then a portrait, then a procedural placeholder; buildings and
// tiles fall back to procedural shapes.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package town
