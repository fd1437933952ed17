package gallery

import (
	"math"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Tracker remembers which slide is centered in each gallery as the user
// swipes. Indexes are kept per gallery key (the owning post), so carousels
// on the same feed screen never share an index.
type Tracker struct {
	active cmap.ConcurrentMap[string, int]
}

func NewTracker() *Tracker {
	return &Tracker{active: cmap.New[int]()}
}

// Update recomputes the active slide from a horizontal scroll offset and
// stores it under key. The index is the nearest slide boundary, clamped to
// [0, count-1]. Returns the stored index.
func (t *Tracker) Update(key string, offset, slideWidth float64, count int) int {
	index := 0
	if count > 0 && slideWidth > 0 {
		index = int(math.Round(offset / slideWidth))
		if index < 0 {
			index = 0
		}
		if index > count-1 {
			index = count - 1
		}
	}
	t.active.Set(key, index)
	return index
}

// Active returns the last stored index for key, 0 when never updated.
func (t *Tracker) Active(key string) int {
	index, ok := t.active.Get(key)
	if !ok {
		return 0
	}
	return index
}

// Forget drops the stored index, e.g. when a post is deleted.
func (t *Tracker) Forget(key string) {
	t.active.Remove(key)
}
