package storage

import (
	"cmp"
	"slices"

	"github.com/mcoot/battleship-go/internal/model"
)

// SortNewestFirst orders matches by finish time, most recent first.
// Ties are broken by ID so the order is stable across backends.
func SortNewestFirst(matches []*model.Match) {
	slices.SortFunc(matches, func(a, b *model.Match) int {
		if c := b.FinishedAt.Compare(a.FinishedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
