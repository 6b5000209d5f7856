package text

import (
	"image"
	"math"
)

// sdfSpread is the distance in pixels mapped onto the full byte range
// on either side of the glyph edge.
const sdfSpread = 8

// distanceField converts an alpha mask to an encoded signed distance
// cell of the same size. The encoding puts the glyph edge at 128,
// interior pixels above and exterior pixels below, saturating at
// sdfSpread pixels from the edge. Distances come from a two-pass
// chamfer sweep over the mask.
func distanceField(mask *image.Alpha) []byte {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	inside := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inside[y*w+x] = mask.AlphaAt(b.Min.X+x, b.Min.Y+y).A >= 128
		}
	}

	const far = float32(math.MaxFloat32)
	dist := make([]float32, w*h)
	for i := range dist {
		dist[i] = far
	}

	// Seed boundary pixels: any pixel with a neighbor on the other side
	// of the edge is half a pixel from it.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if (x > 0 && inside[i-1] != inside[i]) ||
				(x < w-1 && inside[i+1] != inside[i]) ||
				(y > 0 && inside[i-w] != inside[i]) ||
				(y < h-1 && inside[i+w] != inside[i]) {
				dist[i] = 0.5
			}
		}
	}

	const ortho, diag = 1.0, 1.4142135

	// Forward sweep.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x > 0 {
				dist[i] = min(dist[i], dist[i-1]+ortho)
			}
			if y > 0 {
				dist[i] = min(dist[i], dist[i-w]+ortho)
				if x > 0 {
					dist[i] = min(dist[i], dist[i-w-1]+diag)
				}
				if x < w-1 {
					dist[i] = min(dist[i], dist[i-w+1]+diag)
				}
			}
		}
	}

	// Backward sweep.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if x < w-1 {
				dist[i] = min(dist[i], dist[i+1]+ortho)
			}
			if y < h-1 {
				dist[i] = min(dist[i], dist[i+w]+ortho)
				if x < w-1 {
					dist[i] = min(dist[i], dist[i+w+1]+diag)
				}
				if x > 0 {
					dist[i] = min(dist[i], dist[i+w-1]+diag)
				}
			}
		}
	}

	out := make([]byte, w*h)
	for i, d := range dist {
		if !inside[i] {
			d = -d
		}
		v := 0.5 + d/(2*sdfSpread)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[i] = byte(v * 255)
	}
	return out
}
