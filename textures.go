package town

import "github.com/hajimehoshi/ebiten/v2"

// CharacterTextures supplies character sprites. Every lookup returns nil on a
// miss; callers fall back through their own tiers and never fail.
type CharacterTextures interface {
	// Ready reports whether the texture cache has finished loading. The
	// cache is read-only once ready.
	Ready() bool
	// IdleTexture returns the idle/rotation frame facing dir.
	IdleTexture(entityID string, dir Direction) *ebiten.Image
	// WalkingFrames returns the walking cycle facing dir.
	WalkingFrames(entityID string, dir Direction) []*ebiten.Image
	// Portrait returns a single static texture for the character.
	Portrait(entityID string) *ebiten.Image
}

// BuildingTextures supplies building exteriors.
type BuildingTextures interface {
	Ready() bool
	BuildingTexture(buildingID string) *ebiten.Image
}

// TileTextures supplies terrain textures per tile type.
type TileTextures interface {
	Ready() bool
	TileTexture(t TileType, night bool) *ebiten.Image
}

// Textures bundles the providers a Town hands to its entities. Any field may
// be nil; the matching entities then render procedurally.
type Textures struct {
	Characters CharacterTextures
	Buildings  BuildingTextures
	Tiles      TileTextures
}

// TexturesFrom uses one provider, typically an *Atlas, for every entity kind.
func TexturesFrom(p interface {
	CharacterTextures
	BuildingTextures
	TileTextures
}) Textures {
	return Textures{Characters: p, Buildings: p, Tiles: p}
}
