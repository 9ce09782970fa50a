package raster

import "testing"

// TestFillCoversConstantGrid ensures a uniform canvas fills completely with
// distinct coordinates.
func TestFillCoversConstantGrid(t *testing.T) {
	const w, h = 7, 5
	region := Fill(0, 0, w, h, func(x, y int) int { return 1 })
	if len(region) != w*h {
		t.Fatalf("filled %d cells, want %d", len(region), w*h)
	}
	seen := make(map[Point]bool, len(region))
	for _, p := range region {
		if seen[p] {
			t.Fatalf("duplicate cell %v", p)
		}
		seen[p] = true
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			t.Fatalf("cell %v outside the canvas", p)
		}
	}
}

// TestFillStopsAtWall verifies a full-height wall splits the canvas and the
// fill never crosses or includes it.
func TestFillStopsAtWall(t *testing.T) {
	const w, h = 9, 6
	const wallX = 4
	at := func(x, y int) int {
		if x == wallX {
			return 2
		}
		return 1
	}

	region := Fill(0, 0, w, h, at)
	if len(region) != wallX*h {
		t.Fatalf("left fill covered %d cells, want %d", len(region), wallX*h)
	}
	for _, p := range region {
		if p.X >= wallX {
			t.Fatalf("fill leaked past the wall at %v", p)
		}
	}

	region = Fill(w-1, 0, w, h, at)
	if len(region) != (w-wallX-1)*h {
		t.Fatalf("right fill covered %d cells, want %d", len(region), (w-wallX-1)*h)
	}
	for _, p := range region {
		if p.X <= wallX {
			t.Fatalf("fill leaked past the wall at %v", p)
		}
	}
}

// TestFillOutOfBoundsStart returns an empty region for starts outside the
// canvas.
func TestFillOutOfBoundsStart(t *testing.T) {
	at := func(x, y int) int { return 0 }
	for _, p := range []Point{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if got := Fill(float64(p.X), float64(p.Y), 5, 5, at); len(got) != 0 {
			t.Fatalf("start %v: expected empty region, got %d cells", p, len(got))
		}
	}
}

// TestFillFollowsConcaveRegion checks spans reach around obstacles through
// 4-connected paths only.
func TestFillFollowsConcaveRegion(t *testing.T) {
	// A U-shaped region of zeros around a block of ones.
	grid := [][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	}
	at := func(x, y int) int { return grid[y][x] }
	region := Fill(0, 0, 5, 4, at)
	want := 5*4 - 6
	if len(region) != want {
		t.Fatalf("filled %d cells, want %d", len(region), want)
	}
	for _, p := range region {
		if grid[p.Y][p.X] != 0 {
			t.Fatalf("fill entered the block at %v", p)
		}
	}
}
