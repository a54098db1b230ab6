package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/render"
)

func TestPalette(t *testing.T) {
	tests := map[string]struct {
		n        int
		opts     *model.ColorOptions
		generate bool
		check    func(t *testing.T, hexes []string)
	}{
		"Without generation every series should use the default color.": {
			n: 3,
			check: func(t *testing.T, hexes []string) {
				assert.Equal(t, []string{render.DefaultSeriesColor, render.DefaultSeriesColor, render.DefaultSeriesColor}, hexes)
			},
		},
		"Generated colors should be different.": {
			n:        3,
			generate: true,
			check: func(t *testing.T, hexes []string) {
				assert.NotEqual(t, hexes[0], hexes[1])
				assert.NotEqual(t, hexes[1], hexes[2])
			},
		},
		"Configured colors should be used first.": {
			n:        2,
			opts:     &model.ColorOptions{Series: []string{"#ff0000"}},
			generate: true,
			check: func(t *testing.T, hexes []string) {
				assert.Equal(t, "#ff0000", hexes[0])
				assert.NotEqual(t, "#ff0000", hexes[1])
			},
		},
		"Invalid configured colors should be ignored.": {
			n:    1,
			opts: &model.ColorOptions{Series: []string{"red"}},
			check: func(t *testing.T, hexes []string) {
				assert.Equal(t, []string{render.DefaultSeriesColor}, hexes)
			},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			cs := render.Palette(test.n, test.opts, test.generate)
			assert.Len(t, cs, test.n)

			hexes := make([]string, 0, len(cs))
			for _, c := range cs {
				hexes = append(hexes, c.Hex())
			}
			test.check(t, hexes)
		})
	}
}
