package town

import (
	"encoding/json"
	"testing"
)

func newTestCamera(t *testing.T, mode ProjectionMode, w, h int) *Camera {
	t.Helper()
	cfg := CameraConfig{
		Mode: mode, GridWidth: w, GridHeight: h,
		TileWidth: 64, TileHeight: 32, TileSize: 32,
		CanvasWidth: 800, CanvasHeight: 600,
	}
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera(%v): %v", mode, err)
	}
	return cam
}

func TestRoundTrip(t *testing.T) {
	modes := []ProjectionMode{ProjectionDiamond, ProjectionStaggered, ProjectionOrthogonal}
	zooms := []float64{0.5, 1, 1.37, 2}
	for _, mode := range modes {
		for _, z := range zooms {
			cam := newTestCamera(t, mode, 28, 36)
			cam.SetZoom(z)
			cam.SetPan(13.25, -7.5)
			for gy := 0; gy < 36; gy++ {
				for gx := 0; gx < 28; gx++ {
					p := cam.GridToScreen(gx, gy)
					g := cam.ScreenToGrid(p.X, p.Y)
					if g != (GridPos{gx, gy}) {
						t.Fatalf("%v zoom %v: ScreenToGrid(GridToScreen(%d,%d)) = %v", mode, z, gx, gy, g)
					}
				}
			}
		}
	}
}

func TestRoundTripTileCenters(t *testing.T) {
	for _, mode := range []ProjectionMode{ProjectionDiamond, ProjectionStaggered, ProjectionOrthogonal} {
		cam := newTestCamera(t, mode, 10, 10)
		for gy := 0; gy < 10; gy++ {
			for gx := 0; gx < 10; gx++ {
				c := cam.TileCenter(gx, gy)
				if g := cam.ScreenToGrid(c.X, c.Y); g != (GridPos{gx, gy}) {
					t.Errorf("%v: centre of (%d,%d) maps to %v", mode, gx, gy, g)
				}
			}
		}
	}
}

func TestScreenToGridPrecise(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	p := cam.GridToScreen(3, 4)
	g := cam.ScreenToGridPrecise(p.X, p.Y)
	if !approxEqual(g.X, 3, 1e-9) || !approxEqual(g.Y, 4, 1e-9) {
		t.Errorf("ScreenToGridPrecise = %v, want (3,4)", g)
	}
	c := cam.TileCenter(3, 4)
	g = cam.ScreenToGridPrecise(c.X, c.Y)
	if !approxEqual(g.X, 3.5, 1e-9) || !approxEqual(g.Y, 4.5, 1e-9) {
		t.Errorf("centre precise = %v, want (3.5,4.5)", g)
	}
}

func TestDiamondGeometry(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	a := cam.GridToScreen(0, 0)
	b := cam.GridToScreen(1, 0)
	c := cam.GridToScreen(0, 1)
	if !approxEqual(b.X-a.X, 32, epsilon) || !approxEqual(b.Y-a.Y, 16, epsilon) {
		t.Errorf("+x step = (%v,%v), want (32,16)", b.X-a.X, b.Y-a.Y)
	}
	if !approxEqual(c.X-a.X, -32, epsilon) || !approxEqual(c.Y-a.Y, 16, epsilon) {
		t.Errorf("+y step = (%v,%v), want (-32,16)", c.X-a.X, c.Y-a.Y)
	}
}

func TestStaggeredOddRowsShift(t *testing.T) {
	cam := newTestCamera(t, ProjectionStaggered, 10, 10)
	even := cam.GridToScreen(2, 4)
	odd := cam.GridToScreen(2, 5)
	if !approxEqual(odd.X-even.X, 32, epsilon) || !approxEqual(odd.Y-even.Y, 16, epsilon) {
		t.Errorf("odd row offset = (%v,%v), want (32,16)", odd.X-even.X, odd.Y-even.Y)
	}
}

func TestDepthMonotonic(t *testing.T) {
	for _, dm := range []DepthMode{DepthScreenY, DepthGridSum} {
		cfg := CameraConfig{Mode: ProjectionDiamond, GridWidth: 10, GridHeight: 10, TileWidth: 64, TileHeight: 32, Depth: dm}
		cam, err := NewCamera(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if cam.Depth(2, 2) < cam.Depth(1, 1) {
			t.Errorf("%v: depth(2,2)=%v < depth(1,1)=%v", dm, cam.Depth(2, 2), cam.Depth(1, 1))
		}
		if cam.Depth(3, 0) >= cam.Depth(3, 1) {
			t.Errorf("%v: depth should grow with gy", dm)
		}
	}
}

func TestDepthAtScreenMatchesGrid(t *testing.T) {
	for _, dm := range []DepthMode{DepthScreenY, DepthGridSum} {
		cfg := CameraConfig{Mode: ProjectionDiamond, GridWidth: 10, GridHeight: 10, TileWidth: 64, TileHeight: 32, Depth: dm}
		cam, _ := NewCamera(cfg)
		p := cam.GridToScreen(4, 2)
		if got, want := cam.DepthAtScreen(p.X, p.Y), cam.Depth(4, 2); !approxEqual(got, want, 1e-9) {
			t.Errorf("%v: DepthAtScreen = %v, Depth = %v", dm, got, want)
		}
	}
}

func TestIsValidAndClamp(t *testing.T) {
	cam := newTestCamera(t, ProjectionOrthogonal, 5, 4)
	tests := []struct {
		gx, gy int
		valid  bool
		clamp  GridPos
	}{
		{0, 0, true, GridPos{0, 0}},
		{4, 3, true, GridPos{4, 3}},
		{5, 3, false, GridPos{4, 3}},
		{-1, -1, false, GridPos{0, 0}},
		{2, 99, false, GridPos{2, 3}},
	}
	for _, tt := range tests {
		if got := cam.IsValidGridPosition(tt.gx, tt.gy); got != tt.valid {
			t.Errorf("IsValidGridPosition(%d,%d) = %v", tt.gx, tt.gy, got)
		}
		if got := cam.ClampGridPosition(tt.gx, tt.gy); got != tt.clamp {
			t.Errorf("ClampGridPosition(%d,%d) = %v, want %v", tt.gx, tt.gy, got, tt.clamp)
		}
	}
}

func TestVisibleBounds(t *testing.T) {
	// A 10x10 grid of 32px tiles fits an 800x600 canvas entirely.
	cam := newTestCamera(t, ProjectionOrthogonal, 10, 10)
	if got := cam.VisibleBounds(0); got != (GridRect{0, 0, 9, 9}) {
		t.Errorf("VisibleBounds = %v, want full grid", got)
	}

	// Zoomed in, only part of a large grid shows.
	big := newTestCamera(t, ProjectionOrthogonal, 200, 200)
	big.SetZoom(2)
	r := big.VisibleBounds(0)
	if r.MinX <= 0 || r.MaxX >= 199 {
		t.Errorf("VisibleBounds = %v, want a partial range", r)
	}
	// 800px / 64px per tile = 12.5 tiles.
	if w := r.MaxX - r.MinX; w < 12 || w > 14 {
		t.Errorf("visible width %d tiles, want about 13", w)
	}

	padded := big.VisibleBounds(2)
	if padded.MinX != r.MinX-2 || padded.MaxX != r.MaxX+2 {
		t.Errorf("padding: %v vs %v", padded, r)
	}

	// Panned far away, nothing shows.
	big.SetPan(1e6, 1e6)
	if got := big.VisibleBounds(0); !got.Empty() {
		t.Errorf("VisibleBounds off-grid = %v, want empty", got)
	}
}

func TestTileBottom(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	top := cam.GridToScreen(2, 3)
	b := cam.TileBottom(2, 3)
	if !approxEqual(b.X, top.X, epsilon) || !approxEqual(b.Y, top.Y+32, epsilon) {
		t.Errorf("TileBottom = %v, top = %v", b, top)
	}

	ortho := newTestCamera(t, ProjectionOrthogonal, 10, 10)
	tl := ortho.GridToScreen(2, 3)
	b = ortho.TileBottom(2, 3)
	if !approxEqual(b.X, tl.X+16, epsilon) || !approxEqual(b.Y, tl.Y+32, epsilon) {
		t.Errorf("orthogonal TileBottom = %v, top-left = %v", b, tl)
	}
}

func TestProjectionModeText(t *testing.T) {
	var cfg struct {
		Mode  ProjectionMode `json:"mode"`
		Depth DepthMode      `json:"depth"`
	}
	if err := json.Unmarshal([]byte(`{"mode":"staggered","depth":"grid_sum"}`), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != ProjectionStaggered || cfg.Depth != DepthGridSum {
		t.Errorf("decoded %+v", cfg)
	}
	if err := json.Unmarshal([]byte(`{"mode":"hexagonal"}`), &cfg); err == nil {
		t.Error("unknown mode should fail")
	}
	if !ProjectionDiamond.IsIsometric() || ProjectionOrthogonal.IsIsometric() {
		t.Error("IsIsometric")
	}
}
