package raster

import "testing"

// TestLineLengthAndEndpoints checks the point count and endpoint identities
// across all octants.
func TestLineLengthAndEndpoints(t *testing.T) {
	cases := []struct {
		x0, y0, x1, y1 int
	}{
		{0, 0, 10, 3},
		{0, 0, 3, 10},
		{0, 0, -7, 2},
		{0, 0, 2, -7},
		{5, 5, -5, -5},
		{3, -2, 3, 9},
		{-4, 6, 8, 6},
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		points := Line(float64(tc.x0), float64(tc.y0), float64(tc.x1), float64(tc.y1))
		dx := abs(tc.x1 - tc.x0)
		dy := abs(tc.y1 - tc.y0)
		want := max(dx, dy) + 1
		if len(points) != want {
			t.Fatalf("line (%d,%d)-(%d,%d): got %d points, want %d", tc.x0, tc.y0, tc.x1, tc.y1, len(points), want)
		}
		if points[0] != (Point{tc.x0, tc.y0}) {
			t.Fatalf("line (%d,%d)-(%d,%d): starts at %v", tc.x0, tc.y0, tc.x1, tc.y1, points[0])
		}
		if points[len(points)-1] != (Point{tc.x1, tc.y1}) {
			t.Fatalf("line (%d,%d)-(%d,%d): ends at %v", tc.x0, tc.y0, tc.x1, tc.y1, points[len(points)-1])
		}
	}
}

// TestLineIsEightConnected verifies consecutive points differ by at most one
// step per axis and are never identical.
func TestLineIsEightConnected(t *testing.T) {
	for x := -6; x <= 6; x += 3 {
		for y := -6; y <= 6; y += 2 {
			points := Line(0, 0, float64(x), float64(y))
			for i := 1; i < len(points); i++ {
				stepX := abs(points[i].X - points[i-1].X)
				stepY := abs(points[i].Y - points[i-1].Y)
				if stepX > 1 || stepY > 1 {
					t.Fatalf("line to (%d,%d): gap between %v and %v", x, y, points[i-1], points[i])
				}
				if stepX == 0 && stepY == 0 {
					t.Fatalf("line to (%d,%d): duplicate point %v", x, y, points[i])
				}
			}
		}
	}
}

// TestLineReversesExactly ensures swapping endpoints yields the exact
// reverse sequence.
func TestLineReversesExactly(t *testing.T) {
	for x := -9; x <= 9; x += 3 {
		for y := -8; y <= 8; y += 2 {
			forward := Line(1, -2, float64(x), float64(y))
			backward := Line(float64(x), float64(y), 1, -2)
			if len(forward) != len(backward) {
				t.Fatalf("to (%d,%d): lengths differ %d vs %d", x, y, len(forward), len(backward))
			}
			for i := range forward {
				if forward[i] != backward[len(backward)-1-i] {
					t.Fatalf("to (%d,%d): not a reversal at %d: %v vs %v", x, y, i, forward[i], backward[len(backward)-1-i])
				}
			}
		}
	}
}

// TestLineRoundsRealEndpoints checks non-integer endpoints round to the
// nearest grid point.
func TestLineRoundsRealEndpoints(t *testing.T) {
	points := Line(0.4, 0.6, 2.6, 0.4)
	if points[0] != (Point{0, 1}) {
		t.Fatalf("rounded start = %v, want (0,1)", points[0])
	}
	if points[len(points)-1] != (Point{3, 0}) {
		t.Fatalf("rounded end = %v, want (3,0)", points[len(points)-1])
	}
}
