package gallery

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestDisplayHeight(t *testing.T) {
	tests := []struct {
		name                         string
		naturalWidth, naturalHeight  float64
		displayWidth, minH, maxH     float64
		want                         float64
	}{
		{"square image returns display width", 800, 800, 300, 200, 600, 300},
		{"2:1 portrait clamped to max", 1000, 2000, 300, 200, 600, 600},
		{"wide panorama clamped to min", 4000, 1000, 300, 200, 600, 200},
		{"within bounds untouched", 1200, 1600, 300, 200, 600, 400},
		{"exactly max", 100, 200, 300, 200, 600, 600},
		{"exactly min", 300, 200, 300, 200, 600, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayHeight(tt.naturalWidth, tt.naturalHeight, tt.displayWidth, tt.minH, tt.maxH)
			if got != tt.want {
				t.Errorf("DisplayHeight() = %v, want %v", got, tt.want)
			}
			if got < tt.minH || got > tt.maxH {
				t.Errorf("DisplayHeight() = %v out of bounds [%v, %v]", got, tt.minH, tt.maxH)
			}
		})
	}
}

func TestViewHeightFor(t *testing.T) {
	view := View{DisplayWidth: 300, MinHeight: 200, MaxHeight: 600, FallbackHeight: 300}
	if got := view.HeightFor(Dimensions{Width: 0, Height: 0}); got != 300 {
		t.Errorf("unknown dimensions: got %v, want fallback 300", got)
	}
	if got := view.HeightFor(Dimensions{Width: 1000, Height: 2000}); got != 600 {
		t.Errorf("2:1 portrait: got %v, want 600", got)
	}
	if got := view.HeightFor(Dimensions{Width: 500, Height: 500}); got != 300 {
		t.Errorf("square: got %v, want 300", got)
	}
}

func TestSlidesFallbackOnFailure(t *testing.T) {
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		if url == "bad" {
			return Dimensions{}, fmt.Errorf("decode error")
		}
		return Dimensions{Width: 100, Height: 100}, nil
	}
	resolver := NewResolver(probe, nil)
	photos := []Photo{
		{URL: "good", Ord: 1},
		{URL: "bad", Ord: 2},
	}
	slides := Slides(context.Background(), photos, FeedView, resolver)
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].Height != FeedView.DisplayWidth {
		t.Errorf("resolved square slide height = %v, want %v", slides[0].Height, FeedView.DisplayWidth)
	}
	if slides[1].Height != FeedView.FallbackHeight {
		t.Errorf("failed slide height = %v, want fallback %v", slides[1].Height, FeedView.FallbackHeight)
	}
}

func TestSlidesAnyCompletionOrder(t *testing.T) {
	// Later photos resolve before earlier ones; each slide must still get
	// its own height.
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		switch url {
		case "slow":
			time.Sleep(50 * time.Millisecond)
			return Dimensions{Width: 100, Height: 100}, nil
		default:
			return Dimensions{Width: 1000, Height: 2000}, nil
		}
	}
	resolver := NewResolver(probe, nil)
	photos := []Photo{
		{URL: "slow", Ord: 1},
		{URL: "fast", Ord: 2},
	}
	slides := Slides(context.Background(), photos, FeedView, resolver)
	if slides[0].Height != 300 {
		t.Errorf("slow slide height = %v, want 300", slides[0].Height)
	}
	if slides[1].Height != 600 {
		t.Errorf("fast slide height = %v, want 600", slides[1].Height)
	}
}

func TestSlidesKnownDimensionsSkipResolver(t *testing.T) {
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		t.Errorf("probe called for %s despite known dimensions", url)
		return Dimensions{}, nil
	}
	resolver := NewResolver(probe, nil)
	photos := []Photo{
		{URL: "a", Width: 500, Height: 500},
	}
	slides := Slides(context.Background(), photos, DetailView, resolver)
	if slides[0].Height != DetailView.DisplayWidth {
		t.Errorf("height = %v, want %v", slides[0].Height, DetailView.DisplayWidth)
	}
}

func TestSlidesEmpty(t *testing.T) {
	slides := Slides(context.Background(), nil, FeedView, nil)
	if len(slides) != 0 {
		t.Errorf("got %d slides, want 0", len(slides))
	}
}

func TestSlidesCaptionPassThrough(t *testing.T) {
	photos := []Photo{
		{URL: "a", Caption: "first attempt at shakshuka", Width: 10, Height: 10},
	}
	slides := Slides(context.Background(), photos, FeedView, nil)
	if slides[0].Caption != "first attempt at shakshuka" {
		t.Errorf("caption = %q", slides[0].Caption)
	}
}
