package raster

// Fill returns every grid point 4-connectedly reachable from the rounded
// start point through cells whose queried value equals the start cell's
// value. The query function is only ever called with coordinates inside
// [0,width) x [0,height); a start point outside those bounds yields an
// empty result. The scan processes whole horizontal spans from an explicit
// work queue, so cost is proportional to the filled area and no recursion
// depth is involved.
func Fill[T comparable](startX, startY float64, width, height int, at func(x, y int) T) []Point {
	x0 := round(startX)
	y0 := round(startY)
	if width <= 0 || height <= 0 || x0 < 0 || y0 < 0 || x0 >= width || y0 >= height {
		return nil
	}

	target := at(x0, y0)
	visited := make([]bool, width*height)
	var region []Point

	queue := []Point{{x0, y0}}
	for len(queue) > 0 {
		seed := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if visited[seed.Y*width+seed.X] || at(seed.X, seed.Y) != target {
			continue
		}

		// Extend the seed to the maximal matching span on its row.
		left := seed.X
		for left > 0 && !visited[seed.Y*width+left-1] && at(left-1, seed.Y) == target {
			left--
		}
		right := seed.X
		for right < width-1 && !visited[seed.Y*width+right+1] && at(right+1, seed.Y) == target {
			right++
		}
		for x := left; x <= right; x++ {
			visited[seed.Y*width+x] = true
			region = append(region, Point{x, seed.Y})
		}

		// Seed one point per disjoint matching sub-run directly above
		// and below the span.
		for _, ny := range [2]int{seed.Y - 1, seed.Y + 1} {
			if ny < 0 || ny >= height {
				continue
			}
			inRun := false
			for x := left; x <= right; x++ {
				matches := !visited[ny*width+x] && at(x, ny) == target
				if matches && !inRun {
					queue = append(queue, Point{x, ny})
				}
				inRun = matches
			}
		}
	}
	return region
}
