package blog

import "sort"

// SortByDateDesc orders posts newest first, in place. Ties on date (including
// posts without a date, which sort last) are broken by ascending id so the
// order is deterministic.
func SortByDateDesc(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := posts[i].Date, posts[j].Date

		switch {
		case di == nil && dj == nil:
			return posts[i].ID < posts[j].ID
		case di == nil:
			return false
		case dj == nil:
			return true
		}

		if !di.Equal(*dj) {
			return di.After(*dj)
		}
		return posts[i].ID < posts[j].ID
	})
}
