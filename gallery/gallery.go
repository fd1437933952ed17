// Package gallery turns a post's unordered photo records into the ordered,
// sized carousel the mobile app renders. It only ever reads photo metadata -
// the bytes behind a URL belong to the storage layer.
package gallery

import "sort"

// Photo is the metadata snapshot of one photo attached to a post.
// Width/Height are the natural pixel dimensions when already known (0 when
// they still have to be resolved from the URL).
type Photo struct {
	URL       string
	Caption   string
	Ord       int
	Highlight bool
	Width     int
	Height    int
}

// Order returns a new slice with the display order of a post's photos:
// highlighted photos come before non-highlighted ones, photos with the same
// highlight state sort ascending by Ord, and exact ties keep their input
// order. Photos without a URL cannot be rendered and are dropped.
//
// More than one photo may carry the highlight flag (nothing in the data model
// prevents it). In that case the highlighted photo seen first in the input
// keeps the first position, even when another highlighted photo has a
// smaller Ord.
func Order(photos []Photo) []Photo {
	type indexed struct {
		photo Photo
		pos   int
	}
	items := make([]indexed, 0, len(photos))
	highlighted := 0
	firstHighlightPos := -1
	for i, p := range photos {
		if p.URL == "" {
			continue
		}
		if p.Highlight {
			highlighted++
			if firstHighlightPos == -1 {
				firstHighlightPos = i
			}
		}
		items = append(items, indexed{photo: p, pos: i})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].photo.Highlight != items[j].photo.Highlight {
			return items[i].photo.Highlight
		}
		return items[i].photo.Ord < items[j].photo.Ord
	})
	if highlighted > 1 {
		for i, item := range items {
			if item.pos != firstHighlightPos {
				continue
			}
			first := items[i]
			copy(items[1:i+1], items[0:i])
			items[0] = first
			break
		}
	}
	result := make([]Photo, len(items))
	for i, item := range items {
		result[i] = item.photo
	}
	return result
}
