package raster

// RGBA is a color as four 0-255 channels.
type RGBA [4]uint8

// AlphaThreshold is the alpha value at or below which a pixel counts as
// fully transparent and is normalized to the canonical transparent color.
const AlphaThreshold = 8

// transparent is the canonical fully-transparent color.
var transparent = RGBA{0, 0, 0, 0}

// QuantizeResult is the outcome of a median-cut quantization pass.
type QuantizeResult struct {
	Palette []RGBA // palette index -> color
	Indices []int  // per input pixel, in original order
}

type weightedColor struct {
	color RGBA
	count int
}

// Quantize reduces a flat RGBA byte sequence (4 bytes per pixel) to at most
// maxColors palette entries via median-cut, and maps every input pixel to
// its palette index. Pixels with alpha at or below AlphaThreshold are
// normalized to the canonical transparent color, which is guaranteed
// palette index 0 whenever any transparent pixel is present. When the input
// holds no more distinct colors than maxColors, each distinct color keeps
// its own slot in first-occurrence order.
func Quantize(rgba []byte, maxColors int) QuantizeResult {
	pixelCount := len(rgba) / 4
	if pixelCount == 0 || maxColors <= 0 {
		return QuantizeResult{}
	}

	pixels := make([]RGBA, pixelCount)
	hasTransparent := false
	for i := range pixels {
		c := RGBA{rgba[i*4], rgba[i*4+1], rgba[i*4+2], rgba[i*4+3]}
		if c[3] <= AlphaThreshold {
			c = transparent
			hasTransparent = true
		}
		pixels[i] = c
	}

	// Distinct colors with occurrence counts, first-occurrence order.
	seen := make(map[RGBA]int)
	var distinct []weightedColor
	for _, c := range pixels {
		if at, ok := seen[c]; ok {
			distinct[at].count++
			continue
		}
		seen[c] = len(distinct)
		distinct = append(distinct, weightedColor{color: c, count: 1})
	}

	var palette []RGBA
	if len(distinct) <= maxColors {
		palette = exactPalette(distinct, hasTransparent)
	} else {
		palette = medianCutPalette(distinct, maxColors, hasTransparent)
	}

	indices := make([]int, pixelCount)
	lookup := make(map[RGBA]int, len(seen))
	for i, c := range pixels {
		if c == transparent {
			indices[i] = 0
			continue
		}
		idx, ok := lookup[c]
		if !ok {
			idx = nearestIndex(palette, c, hasTransparent)
			lookup[c] = idx
		}
		indices[i] = idx
	}
	return QuantizeResult{Palette: palette, Indices: indices}
}

// exactPalette assigns one slot per distinct color, moving the canonical
// transparent color to index 0 when present.
func exactPalette(distinct []weightedColor, hasTransparent bool) []RGBA {
	palette := make([]RGBA, 0, len(distinct))
	if hasTransparent {
		palette = append(palette, transparent)
	}
	for _, wc := range distinct {
		if wc.color == transparent {
			continue
		}
		palette = append(palette, wc.color)
	}
	return palette
}

// medianCutPalette recursively bisects the opaque color set along the
// channel with the greatest range, splitting at the weighted median, until
// the bucket count reaches the target.
func medianCutPalette(distinct []weightedColor, maxColors int, hasTransparent bool) []RGBA {
	opaque := make([]weightedColor, 0, len(distinct))
	for _, wc := range distinct {
		if wc.color != transparent {
			opaque = append(opaque, wc)
		}
	}

	target := maxColors
	if hasTransparent {
		target--
	}
	if target > len(opaque) {
		target = len(opaque)
	}
	if target < 1 {
		target = 1
	}

	buckets := [][]weightedColor{opaque}
	for len(buckets) < target {
		best, channel := widestBucket(buckets)
		if best < 0 {
			break
		}
		lo, hi := splitBucket(buckets[best], channel)
		buckets[best] = lo
		buckets = append(buckets, hi)
	}

	palette := make([]RGBA, 0, target+1)
	if hasTransparent {
		palette = append(palette, transparent)
	}
	for _, bucket := range buckets {
		palette = append(palette, averageColor(bucket))
	}
	return palette
}

// widestBucket picks the splittable bucket with the greatest single-channel
// range and reports that channel. Returns -1 when nothing can be split.
func widestBucket(buckets [][]weightedColor) (int, int) {
	bestBucket, bestChannel, bestRange := -1, 0, -1
	for i, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		for ch := 0; ch < 3; ch++ {
			lo, hi := 255, 0
			for _, wc := range bucket {
				v := int(wc.color[ch])
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			if hi-lo > bestRange {
				bestBucket, bestChannel, bestRange = i, ch, hi-lo
			}
		}
	}
	return bestBucket, bestChannel
}

// splitBucket orders the bucket by the given channel and cuts it at the
// weighted median population point, keeping both halves non-empty.
func splitBucket(bucket []weightedColor, channel int) ([]weightedColor, []weightedColor) {
	sorted := make([]weightedColor, len(bucket))
	copy(sorted, bucket)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].color[channel] < sorted[j-1].color[channel]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	total := 0
	for _, wc := range sorted {
		total += wc.count
	}
	acc := 0
	cut := 0
	for i, wc := range sorted {
		acc += wc.count
		if acc*2 >= total {
			cut = i + 1
			break
		}
	}
	if cut <= 0 {
		cut = 1
	}
	if cut >= len(sorted) {
		cut = len(sorted) - 1
	}
	return sorted[:cut], sorted[cut:]
}

// averageColor is the occurrence-weighted channel average of a bucket.
func averageColor(bucket []weightedColor) RGBA {
	if len(bucket) == 0 {
		return transparent
	}
	var sums [4]int
	total := 0
	for _, wc := range bucket {
		for ch := 0; ch < 4; ch++ {
			sums[ch] += int(wc.color[ch]) * wc.count
		}
		total += wc.count
	}
	var avg RGBA
	for ch := 0; ch < 4; ch++ {
		avg[ch] = uint8((sums[ch] + total/2) / total)
	}
	return avg
}

// nearestIndex finds the palette entry closest to c by squared distance
// over the color channels. Opaque pixels never map to the reserved
// transparent slot.
func nearestIndex(palette []RGBA, c RGBA, hasTransparent bool) int {
	start := 0
	if hasTransparent {
		start = 1
	}
	best, bestDist := start, 1<<31-1
	for i := start; i < len(palette); i++ {
		d := 0
		for ch := 0; ch < 4; ch++ {
			delta := int(palette[i][ch]) - int(c[ch])
			d += delta * delta
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
