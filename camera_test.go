package town

import (
	"errors"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewCameraDegenerate(t *testing.T) {
	base := CameraConfig{Mode: ProjectionDiamond, GridWidth: 4, GridHeight: 4, TileWidth: 64, TileHeight: 32}
	tests := []struct {
		name string
		edit func(*CameraConfig)
	}{
		{"zero tile width", func(c *CameraConfig) { c.TileWidth = 0 }},
		{"negative tile height", func(c *CameraConfig) { c.TileHeight = -1 }},
		{"zero grid width", func(c *CameraConfig) { c.GridWidth = 0 }},
		{"negative grid height", func(c *CameraConfig) { c.GridHeight = -3 }},
		{"orthogonal zero tile size", func(c *CameraConfig) { c.Mode = ProjectionOrthogonal }},
		{"unknown mode", func(c *CameraConfig) { c.Mode = ProjectionMode(9) }},
		{"negative canvas", func(c *CameraConfig) { c.CanvasWidth = -10 }},
		{"negative zoom", func(c *CameraConfig) { c.Zoom = -1 }},
		{"grid sum depth on staggered", func(c *CameraConfig) { c.Mode, c.Depth = ProjectionStaggered, DepthGridSum }},
		{"grid sum depth on orthogonal", func(c *CameraConfig) {
			c.Mode, c.Depth, c.TileSize = ProjectionOrthogonal, DepthGridSum, 32
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.edit(&cfg)
			cam, err := NewCamera(cfg)
			if !errors.Is(err, ErrDegenerateCamera) {
				t.Fatalf("err = %v, want ErrDegenerateCamera", err)
			}
			if cam != nil {
				t.Error("camera returned alongside error")
			}
		})
	}
}

func TestCameraGridSumDepthDiamond(t *testing.T) {
	cfg := CameraConfig{Mode: ProjectionDiamond, GridWidth: 4, GridHeight: 4, TileWidth: 64, TileHeight: 32, Depth: DepthGridSum}
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if got := cam.Depth(3, 1); got != 4 {
		t.Errorf("Depth(3,1) = %v, want 4", got)
	}
}

func TestCameraDefaults(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	if cam.Zoom() != 1 {
		t.Errorf("Zoom = %v, want 1", cam.Zoom())
	}
	if p := cam.Pan(); p != (Vec2{}) {
		t.Errorf("Pan = %v, want zero", p)
	}
	if w, h := cam.GridSize(); w != 10 || h != 10 {
		t.Errorf("GridSize = %dx%d", w, h)
	}
	if cam.Scrolling() {
		t.Error("Scrolling at start")
	}
}

func TestCameraCentresGrid(t *testing.T) {
	for _, mode := range []ProjectionMode{ProjectionDiamond, ProjectionStaggered, ProjectionOrthogonal} {
		cam := newTestCamera(t, mode, 6, 6)
		minX, maxX := 1e9, -1e9
		minY, maxY := 1e9, -1e9
		for gy := 0; gy < 6; gy++ {
			for gx := 0; gx < 6; gx++ {
				for _, p := range cam.TileCorners(gx, gy) {
					minX, maxX = min(minX, p.X), max(maxX, p.X)
					minY, maxY = min(minY, p.Y), max(maxY, p.Y)
				}
			}
		}
		if !approxEqual((minX+maxX)/2, 400, 1e-6) || !approxEqual((minY+maxY)/2, 300, 1e-6) {
			t.Errorf("%v: grid centre = (%v,%v), want (400,300)", mode, (minX+maxX)/2, (minY+maxY)/2)
		}
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	cam.SetZoom(10)
	if cam.Zoom() != MaxZoom {
		t.Errorf("Zoom = %v, want %v", cam.Zoom(), MaxZoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom() != MinZoom {
		t.Errorf("Zoom = %v, want %v", cam.Zoom(), MinZoom)
	}
	cam.SetZoom(1)
	cam.ZoomBy(1.5)
	if !approxEqual(cam.Zoom(), 1.5, epsilon) {
		t.Errorf("ZoomBy: Zoom = %v, want 1.5", cam.Zoom())
	}
	if !approxEqual(cam.TileWidth(), 96, epsilon) || !approxEqual(cam.TileHeight(), 48, epsilon) {
		t.Errorf("zoomed tile = %vx%v, want 96x48", cam.TileWidth(), cam.TileHeight())
	}
}

func TestCameraInitialZoomClamped(t *testing.T) {
	cam, err := NewCamera(CameraConfig{Mode: ProjectionOrthogonal, GridWidth: 2, GridHeight: 2, TileSize: 16, Zoom: 5})
	if err != nil {
		t.Fatal(err)
	}
	if cam.Zoom() != MaxZoom {
		t.Errorf("Zoom = %v, want %v", cam.Zoom(), MaxZoom)
	}
}

func TestCameraRevision(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	r := cam.Revision()

	cam.SetZoom(1) // unchanged
	cam.SetPan(0, 0)
	cam.SetCanvasSize(800, 600)
	if cam.Revision() != r {
		t.Errorf("no-op setters bumped revision %d -> %d", r, cam.Revision())
	}

	cam.PanBy(5, 0)
	if cam.Revision() == r {
		t.Error("PanBy did not bump revision")
	}
	r = cam.Revision()
	cam.SetCanvasSize(1024, 768)
	if cam.Revision() == r {
		t.Error("SetCanvasSize did not bump revision")
	}
}

func TestCameraPanShiftsScreen(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	before := cam.GridToScreen(3, 3)
	cam.PanBy(12, -4)
	after := cam.GridToScreen(3, 3)
	if !approxEqual(after.X-before.X, 12, epsilon) || !approxEqual(after.Y-before.Y, -4, epsilon) {
		t.Errorf("pan moved tile by (%v,%v), want (12,-4)", after.X-before.X, after.Y-before.Y)
	}
}

func TestCameraZoomKeepsCentre(t *testing.T) {
	cam := newTestCamera(t, ProjectionOrthogonal, 10, 10)
	cam.SetPan(40, 20)
	before := cam.ScreenToGridPrecise(400, 300)
	cam.SetZoom(2)
	after := cam.ScreenToGridPrecise(400, 300)
	if !approxEqual(before.X, after.X, 1e-9) || !approxEqual(before.Y, after.Y, 1e-9) {
		t.Errorf("centre moved from %v to %v", before, after)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	cam.ScrollTo(100, -50, 1000, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	cam.Update(500)
	p := cam.Pan()
	if !approxEqual(p.X, 50, 1e-3) || !approxEqual(p.Y, -25, 1e-3) {
		t.Errorf("halfway pan = %v, want (50,-25)", p)
	}

	cam.Update(600)
	p = cam.Pan()
	if !approxEqual(p.X, 100, 1e-3) || !approxEqual(p.Y, -50, 1e-3) {
		t.Errorf("final pan = %v, want (100,-50)", p)
	}
	if cam.Scrolling() {
		t.Error("still scrolling after the duration")
	}
}

func TestCameraScrollToInstant(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	cam.ScrollTo(7, 9, 0, nil)
	if cam.Scrolling() {
		t.Error("zero-duration scroll should not animate")
	}
	if p := cam.Pan(); p != (Vec2{7, 9}) {
		t.Errorf("Pan = %v, want (7,9)", p)
	}
}

func TestCameraSetPanCancelsScroll(t *testing.T) {
	cam := newTestCamera(t, ProjectionDiamond, 10, 10)
	cam.ScrollTo(100, 100, 1000, nil)
	cam.SetPan(1, 1)
	if cam.Scrolling() {
		t.Error("SetPan should cancel the scroll")
	}
}

func TestCameraCenterOn(t *testing.T) {
	cam := newTestCamera(t, ProjectionStaggered, 20, 20)
	cam.CenterOn(3, 15, 0)
	c := cam.TileCenter(3, 15)
	if !approxEqual(c.X, 400, 1e-6) || !approxEqual(c.Y, 300, 1e-6) {
		t.Errorf("centre of (3,15) = %v, want (400,300)", c)
	}
}

func TestCameraReproject(t *testing.T) {
	for _, mode := range []ProjectionMode{ProjectionDiamond, ProjectionStaggered, ProjectionOrthogonal} {
		cam := newTestCamera(t, mode, 10, 10)
		a := cam.GridToScreen(2, 5)
		b := cam.GridToScreen(3, 5)
		mid := Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}

		old := cam.View()
		cam.SetZoom(1.7)
		cam.PanBy(-30, 12)

		a2 := cam.GridToScreen(2, 5)
		b2 := cam.GridToScreen(3, 5)
		want := Vec2{(a2.X + b2.X) / 2, (a2.Y + b2.Y) / 2}
		got := cam.Reproject(mid, old)
		if !approxEqual(got.X, want.X, 1e-9) || !approxEqual(got.Y, want.Y, 1e-9) {
			t.Errorf("%v: Reproject = %v, want %v", mode, got, want)
		}
	}
}
