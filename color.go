package sdfui

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]; alpha is straight (not
// premultiplied) until Premultiply is called during command encoding.
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = RGBA{}
	Black       = RGBA{A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

// Premultiply returns the color with its RGB components scaled by alpha,
// the form the GPU fill commands expect.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Add returns the componentwise sum of two colors. Alpha is preserved
// from the receiver; Add is used for brightness adjustment, not blending.
func (c RGBA) Add(other RGBA) RGBA {
	return RGBA{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: c.A}
}

// Scale returns the color with its RGB components scaled by s.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// MulAlpha returns the color with its alpha multiplied by a.
func (c RGBA) MulAlpha(a float32) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A * a}
}

// Invisible reports whether the color contributes nothing when drawn.
func (c RGBA) Invisible() bool {
	return c.A <= 0
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
