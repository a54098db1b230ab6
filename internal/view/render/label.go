package render

import (
	"fmt"

	"github.com/whaeuser/plotterm/internal/model"
)

// SeriesLabels returns a unique, non empty label for every series of the
// dataset in the same order. Series without ID are named by their position
// and repeated labels get a numeric suffix.
func SeriesLabels(ds model.Dataset) []string {
	res := make([]string, 0, len(ds.Series))
	seen := make(map[string]bool, len(ds.Series))

	for i, s := range ds.Series {
		base := s.ID
		if base == "" {
			base = fmt.Sprintf("series-%d", i+1)
		}

		label := base
		for n := 2; seen[label]; n++ {
			label = fmt.Sprintf("%s (%d)", base, n)
		}
		seen[label] = true
		res = append(res, label)
	}

	return res
}
