package town

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuildingTextures struct {
	ready bool
	tex   map[string]*ebiten.Image
}

func (f *fakeBuildingTextures) Ready() bool { return f.ready }

func (f *fakeBuildingTextures) BuildingTexture(id string) *ebiten.Image { return f.tex[id] }

func TestNewBuildingDefaults(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	b := NewBuilding("bakery", cam, 3, 4, BuildingOptions{})
	w, h := b.Footprint()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, "bakery", b.Name(), "name falls back to id")
	assert.Equal(t, RGB(0xc0714f), b.ThemeColor())

	b = NewBuilding("clinic", cam, 0, 0, BuildingOptions{Label: "Clinic", IndustryTag: "health", FootprintWidth: 3})
	assert.Equal(t, "Clinic", b.Name())
	assert.Equal(t, "Clinic", b.Label())
	assert.Equal(t, "health", b.IndustryTag())
	w, _ = b.Footprint()
	assert.Equal(t, 3, w)
}

func TestBuildingStandsOnTileBottom(t *testing.T) {
	cam := newTestCamera(t, ProjectionStaggered, 10, 10)
	b := NewBuilding("b", cam, 4, 5, BuildingOptions{})
	p := cam.TileBottom(4, 5)
	assert.Equal(t, p.X, b.X())
	assert.Equal(t, p.Y, b.Y())
	assert.Equal(t, cam.Depth(4, 5), b.Depth())
}

func TestBuildingFallbackLayout(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	b := NewBuilding("b", cam, 4, 4, BuildingOptions{})
	b.Build()
	l := b.Layout()

	require.False(t, l.Textured)
	assert.Equal(t, Vec2{128, 128}, l.Target, "2x2 footprint of 64px tiles")
	assert.Equal(t, Vec2{b.X(), b.Y()}, l.Anchor)

	s := l.Shape
	assert.InDelta(t, 128*0.8, s.Body.Width, epsilon)
	assert.InDelta(t, 128*0.65, s.Body.Height, epsilon)
	assert.InDelta(t, b.Y(), s.Body.Y+s.Body.Height, epsilon, "body stands on the anchor")
	assert.InDelta(t, b.Y()-128, s.Roof[1].Y, epsilon, "roof apex at full height")
	assert.InDelta(t, b.X(), s.Roof[1].X, epsilon)
	assert.InDelta(t, s.Body.Y, s.Roof[0].Y, epsilon)
	assert.InDelta(t, b.Y(), s.Door.Y+s.Door.Height, epsilon, "door sits on the ground")
	assert.InDelta(t, b.X(), s.Door.X+s.Door.Width/2, epsilon)

	// Windows mirror each other around the anchor.
	left, right := s.Windows[0], s.Windows[1]
	assert.InDelta(t, b.X()-(left.X+left.Width/2), (right.X+right.Width/2)-b.X(), epsilon)
	assert.Equal(t, left.Y, right.Y)
	assert.InDelta(t, b.Y()+labelGap, l.LabelPos.Y, epsilon)
}

func TestBuildingTexturedLayout(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	tex := &fakeBuildingTextures{
		ready: true,
		tex:   map[string]*ebiten.Image{"wide": ebiten.NewImage(256, 64)},
	}
	b := NewBuilding("wide", cam, 4, 4, BuildingOptions{Textures: tex})
	b.Build()
	l := b.Layout()

	require.True(t, l.Textured)
	// Target 128x128; width limits the scale.
	assert.InDelta(t, 0.5, l.Scale, epsilon)
	assert.InDelta(t, 128, l.Size.X, epsilon)
	assert.InDelta(t, 32, l.Size.Y, epsilon)

	cam.SetZoom(2)
	b.base().refreshFromGrid()
	assert.InDelta(t, 1.0, b.Layout().Scale, epsilon, "scale follows zoom")
}

func TestBuildingBuildWaitsForReady(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	img := ebiten.NewImage(64, 64)
	tex := &fakeBuildingTextures{tex: map[string]*ebiten.Image{"b": img}}
	b := NewBuilding("b", cam, 1, 1, BuildingOptions{Textures: tex})

	b.Build()
	assert.Nil(t, b.Texture(), "provider still loading")

	tex.ready = true
	b.Build()
	assert.Same(t, img, b.Texture())

	b.SetTexture(nil)
	assert.Nil(t, b.Texture())
	assert.False(t, b.Layout().Textured)

	b.Destroy()
	assert.False(t, b.built)
}

func TestBuildingDoorTile(t *testing.T) {
	diamond := newTestCamera(t, ProjectionDiamond, 10, 10)
	assert.Equal(t, GridPos{3, 5}, NewBuilding("a", diamond, 3, 4, BuildingOptions{}).DoorTile())
	assert.Equal(t, GridPos{3, 9}, NewBuilding("b", diamond, 3, 9, BuildingOptions{}).DoorTile(), "clamped")

	staggered := newTestCamera(t, ProjectionStaggered, 10, 10)
	assert.Equal(t, GridPos{3, 6}, NewBuilding("c", staggered, 3, 4, BuildingOptions{}).DoorTile())
	assert.Equal(t, GridPos{3, 9}, NewBuilding("d", staggered, 3, 8, BuildingOptions{}).DoorTile())
}

func TestBuildingDraw(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	dst := ebiten.NewImage(800, 600)
	b := NewBuilding("b", cam, 4, 4, BuildingOptions{Label: "Bakery"})
	b.Draw(dst) // not built, no-op
	b.Build()
	b.SetNight(true)
	b.Draw(dst)
}
