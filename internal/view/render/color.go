package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/whaeuser/plotterm/internal/model"
)

// DefaultSeriesColor is used for every series when the colors plugin is
// not available.
const DefaultSeriesColor = "#1f77b4"

// goldenAngle spreads the hues so consecutive series are easy to tell apart.
const goldenAngle = 137.508

// Palette returns n colors for the series of a chart. Configured colors are
// used first, the rest are generated when generate is true or set to the
// default color otherwise.
func Palette(n int, opts *model.ColorOptions, generate bool) []colorful.Color {
	def, _ := colorful.Hex(DefaultSeriesColor)

	res := make([]colorful.Color, 0, n)
	for i := 0; i < n; i++ {
		if opts != nil && i < len(opts.Series) {
			if c, err := colorful.Hex(opts.Series[i]); err == nil {
				res = append(res, c)
				continue
			}
		}

		if !generate {
			res = append(res, def)
			continue
		}

		h := float64(i) * goldenAngle
		for h >= 360 {
			h -= 360
		}
		res = append(res, colorful.Hsv(h, 0.65, 0.95))
	}

	return res
}

// RGB255 returns the 0-255 components of a color.
func RGB255(c colorful.Color) (r, g, b int) {
	r8, g8, b8 := c.Clamped().RGB255()
	return int(r8), int(g8), int(b8)
}
