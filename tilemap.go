package town

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxTilesPerDraw is the maximum number of tiles per DrawTriangles call.
// Limited by uint16 index buffer: 65535 / 4 vertices per tile = 16383.
const maxTilesPerDraw = 16383

// tileCullPadding is the number of extra tiles drawn beyond the visible
// bounds so tall tile textures don't pop at the canvas edge.
const tileCullPadding = 2

// TileMap holds the terrain grid. The layout is generated once from the
// camera's grid dimensions and a LayoutConfig and cached; individual tiles
// may be overwritten afterwards with SetTileAt.
type TileMap struct {
	cam    *Camera
	width  int
	height int
	layout LayoutConfig
	tiles  []TileType // row-major, len = width * height

	// Palette supplies fallback fills. Defaults to DefaultPalette.
	Palette Palette

	textures TileTextures

	// Fallback geometry buffer, 4 vertices and 6 indices per untextured tile.
	vertices  []ebiten.Vertex
	indices   []uint16
	tileCount int
	textured  []GridPos // visible tiles drawn from textures instead

	bufRevision uint64
	bufNight    bool
	bufReady    bool
	bufBounds   GridRect
	bufDirty    bool
}

// NewTileMap generates the layout for the camera's grid. textures may be nil.
func NewTileMap(cam *Camera, layout LayoutConfig, textures TileTextures) *TileMap {
	w, h := cam.GridSize()
	m := &TileMap{
		cam:      cam,
		width:    w,
		height:   h,
		layout:   layout,
		Palette:  DefaultPalette,
		textures: textures,
	}
	m.Generate()
	return m
}

// Generate repaints every tile from the layout, discarding SetTileAt edits.
// Calling it repeatedly yields identical grids.
func (m *TileMap) Generate() {
	m.tiles = GenerateLayout(m.cam.Mode(), m.width, m.height, m.layout)
	m.bufDirty = true
}

// Layout returns the layout configuration the map was generated from.
func (m *TileMap) Layout() LayoutConfig {
	return m.layout
}

// Size returns the grid dimensions in tiles.
func (m *TileMap) Size() (w, h int) {
	return m.width, m.height
}

// TileAt returns the tile type at (gx, gy). Out-of-bounds queries return
// TileGrass.
func (m *TileMap) TileAt(gx, gy int) TileType {
	if gx < 0 || gx >= m.width || gy < 0 || gy >= m.height {
		return TileGrass
	}
	return m.tiles[gy*m.width+gx]
}

// SetTileAt overwrites a single tile. Out-of-bounds writes are ignored.
func (m *TileMap) SetTileAt(gx, gy int, t TileType) {
	if gx < 0 || gx >= m.width || gy < 0 || gy >= m.height {
		return
	}
	if m.tiles[gy*m.width+gx] == t {
		return
	}
	m.tiles[gy*m.width+gx] = t
	if m.bufBounds.Contains(gx, gy) {
		m.bufDirty = true
	}
}

// SetTextures replaces the texture provider and forces a rebuild.
func (m *TileMap) SetTextures(textures TileTextures) {
	m.textures = textures
	m.InvalidateBuffer()
}

// InvalidateBuffer forces a full buffer rebuild on the next Draw.
func (m *TileMap) InvalidateBuffer() {
	m.bufDirty = true
}

func (m *TileMap) texturesReady() bool {
	return m.textures != nil && m.textures.Ready()
}

// Draw renders the visible tiles. Tiles with a texture are drawn scaled to
// the tile width and anchored at the tile's bottom centre; the rest are
// filled polygons colored from the palette, using the night variant when
// night is set.
func (m *TileMap) Draw(dst *ebiten.Image, night bool) {
	bounds := m.cam.VisibleBounds(tileCullPadding)
	ready := m.texturesReady()
	if m.bufDirty || m.bufRevision != m.cam.Revision() || m.bufNight != night ||
		m.bufReady != ready || m.bufBounds != bounds {
		m.rebuildBuffer(bounds, night, ready)
	}

	for offset := 0; offset < m.tileCount; offset += maxTilesPerDraw {
		end := min(offset+maxTilesPerDraw, m.tileCount)
		dst.DrawTriangles(
			m.vertices[offset*4:end*4],
			m.indices[:(end-offset)*6],
			whitePixel(),
			&ebiten.DrawTrianglesOptions{},
		)
	}

	for _, g := range m.textured {
		img := m.textures.TileTexture(m.TileAt(g.X, g.Y), night)
		if img == nil {
			continue
		}
		m.drawTexture(dst, img, g)
	}
}

func (m *TileMap) drawTexture(dst, img *ebiten.Image, g GridPos) {
	b := img.Bounds()
	tw := float64(b.Dx())
	if tw == 0 {
		return
	}
	scale := m.cam.TileWidth() / tw
	bottom := m.cam.TileBottom(g.X, g.Y)
	drawImageAt(dst, img, bottom.X-tw*scale/2, bottom.Y-float64(b.Dy())*scale, scale, scale)
}

// ensureBuffer grows the geometry buffer if needed.
func (m *TileMap) ensureBuffer(tiles int) {
	if tiles*4 <= len(m.vertices) {
		return
	}
	m.vertices = make([]ebiten.Vertex, tiles*4)

	// Topology never changes: two triangles per quad, indices restart every
	// maxTilesPerDraw tiles because each chunk is drawn on its own.
	n := min(tiles, maxTilesPerDraw)
	m.indices = make([]uint16, n*6)
	for i := 0; i < n; i++ {
		base := uint16(i * 4)
		off := i * 6
		m.indices[off+0] = base + 0
		m.indices[off+1] = base + 1
		m.indices[off+2] = base + 2
		m.indices[off+3] = base + 0
		m.indices[off+4] = base + 2
		m.indices[off+5] = base + 3
	}
}

// rebuildBuffer fills the vertex buffer with every visible untextured tile
// and records which visible tiles come from textures.
func (m *TileMap) rebuildBuffer(bounds GridRect, night, ready bool) {
	m.bufRevision = m.cam.Revision()
	m.bufNight = night
	m.bufReady = ready
	m.bufBounds = bounds
	m.bufDirty = false
	m.textured = m.textured[:0]
	m.tileCount = 0

	if bounds.Empty() {
		return
	}
	m.ensureBuffer((bounds.MaxX - bounds.MinX + 1) * (bounds.MaxY - bounds.MinY + 1))

	for gy := bounds.MinY; gy <= bounds.MaxY; gy++ {
		for gx := bounds.MinX; gx <= bounds.MaxX; gx++ {
			t := m.TileAt(gx, gy)
			if ready && m.textures.TileTexture(t, night) != nil {
				m.textured = append(m.textured, GridPos{X: gx, Y: gy})
				continue
			}

			c := m.Palette.Color(t, night)
			corners := m.cam.TileCorners(gx, gy)
			vi := m.tileCount * 4
			for k, p := range corners {
				v := &m.vertices[vi+k]
				v.DstX = float32(p.X)
				v.DstY = float32(p.Y)
				setVertexColor(v, c)
			}
			m.tileCount++
		}
	}
}
