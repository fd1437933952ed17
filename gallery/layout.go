package gallery

import (
	"context"
	"sync"
)

// View is the presentation context a gallery renders in. Each screen renders
// slides at a fixed width and clamps the computed height to its own bounds;
// FallbackHeight is used whenever the natural dimensions are unknown.
type View struct {
	DisplayWidth   float64
	MinHeight      float64
	MaxHeight      float64
	FallbackHeight float64
}

var (
	// FeedView is the compact carousel on the home feed
	FeedView = View{DisplayWidth: 300, MinHeight: 200, MaxHeight: 600, FallbackHeight: 300}
	// DetailView is the full-width carousel on the post detail screen
	DetailView = View{DisplayWidth: 400, MinHeight: 240, MaxHeight: 700, FallbackHeight: 400}
)

// DisplayHeight scales naturalHeight to displayWidth preserving the aspect
// ratio and clamps the result to [minHeight, maxHeight]. naturalWidth must be
// positive - callers with unknown dimensions use View.FallbackHeight instead
// of calling this.
func DisplayHeight(naturalWidth, naturalHeight, displayWidth, minHeight, maxHeight float64) float64 {
	height := displayWidth * naturalHeight / naturalWidth
	if height < minHeight {
		return minHeight
	}
	if height > maxHeight {
		return maxHeight
	}
	return height
}

// HeightFor returns the slide height for the given natural dimensions,
// falling back to FallbackHeight when they are not (yet) known.
func (v View) HeightFor(dims Dimensions) float64 {
	if dims.Width <= 0 || dims.Height <= 0 {
		return v.FallbackHeight
	}
	return DisplayHeight(float64(dims.Width), float64(dims.Height), v.DisplayWidth, v.MinHeight, v.MaxHeight)
}

// Slide is one rendered carousel entry.
type Slide struct {
	URL     string  `json:"url"`
	Caption string  `json:"caption"`
	Height  float64 `json:"height"`
}

// Slides produces the render sequence for one post: photos in display order,
// each with its display height for the view. Dimensions missing from the
// records are resolved concurrently (one lookup per photo); a failed lookup
// leaves that slide at the fallback height and never fails the gallery.
// A nil resolver skips resolution entirely.
func Slides(ctx context.Context, photos []Photo, view View, resolver *Resolver) []Slide {
	ordered := Order(photos)
	slides := make([]Slide, len(ordered))
	var wg sync.WaitGroup
	for i, photo := range ordered {
		slides[i] = Slide{
			URL:     photo.URL,
			Caption: photo.Caption,
			Height:  view.HeightFor(Dimensions{Width: photo.Width, Height: photo.Height}),
		}
		if photo.Width > 0 && photo.Height > 0 {
			continue
		}
		if resolver == nil {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			dims, err := resolver.Resolve(ctx, url)
			if err != nil {
				// Fallback height already set
				return
			}
			slides[i].Height = view.HeightFor(dims)
		}(i, photo.URL)
	}
	wg.Wait()
	return slides
}
