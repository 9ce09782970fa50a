package raster

// Line returns the ordered 8-connected run of grid points from (x0,y0) to
// (x1,y1). Real endpoints are rounded to the nearest integer first. The
// result holds exactly max(|dx|,|dy|)+1 points, begins at the rounded start,
// ends at the rounded end, and swapping the endpoints yields the exact
// reverse sequence.
func Line(x0, y0, x1, y1 float64) []Point {
	start := Point{round(x0), round(y0)}
	end := Point{round(x1), round(y1)}

	// Rasterize in a canonical orientation so that swapped endpoints
	// produce the same cells, then restore the requested direction.
	if end.X < start.X || (end.X == start.X && end.Y < start.Y) {
		points := bresenham(end, start)
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
		return points
	}
	return bresenham(start, end)
}

// bresenham walks the major axis with an integer error accumulator,
// generalized across all octants by the per-axis step signs.
func bresenham(start, end Point) []Point {
	dx := abs(end.X - start.X)
	dy := abs(end.Y - start.Y)
	sx := sign(end.X - start.X)
	sy := sign(end.Y - start.Y)

	x, y := start.X, start.Y
	if dx >= dy {
		points := make([]Point, 0, dx+1)
		errAcc := dx / 2
		for i := 0; i <= dx; i++ {
			points = append(points, Point{x, y})
			errAcc -= dy
			if errAcc < 0 {
				y += sy
				errAcc += dx
			}
			x += sx
		}
		return points
	}

	points := make([]Point, 0, dy+1)
	errAcc := dy / 2
	for i := 0; i <= dy; i++ {
		points = append(points, Point{x, y})
		errAcc -= dx
		if errAcc < 0 {
			x += sx
			errAcc += dy
		}
		y += sy
	}
	return points
}
