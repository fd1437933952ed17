package gallery

import "testing"

func TestTrackerUpdate(t *testing.T) {
	tests := []struct {
		name       string
		offset     float64
		slideWidth float64
		count      int
		want       int
	}{
		{"at start", 0, 300, 5, 0},
		{"rounds down", 140, 300, 5, 0},
		{"rounds up", 160, 300, 5, 1},
		{"exact slide", 600, 300, 5, 2},
		{"clamped to last", 9000, 300, 5, 4},
		{"negative offset clamped", -200, 300, 5, 0},
		{"zero count", 100, 300, 0, 0},
		{"zero slide width", 100, 0, 5, 0},
	}
	tracker := NewTracker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tracker.Update("post:1", tt.offset, tt.slideWidth, tt.count); got != tt.want {
				t.Errorf("Update() = %d, want %d", got, tt.want)
			}
			if got := tracker.Active("post:1"); got != tt.want {
				t.Errorf("Active() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrackerIndependentGalleries(t *testing.T) {
	// Two carousels on the same feed screen: swiping one must not move the
	// other's indicator.
	tracker := NewTracker()
	tracker.Update("post:1", 900, 300, 5)
	tracker.Update("post:2", 0, 300, 5)
	if got := tracker.Active("post:1"); got != 3 {
		t.Errorf("post:1 active = %d, want 3", got)
	}
	if got := tracker.Active("post:2"); got != 0 {
		t.Errorf("post:2 active = %d, want 0", got)
	}
	tracker.Update("post:2", 300, 300, 5)
	if got := tracker.Active("post:1"); got != 3 {
		t.Errorf("post:1 active changed to %d after swiping post:2", got)
	}
}

func TestTrackerUnknownKey(t *testing.T) {
	tracker := NewTracker()
	if got := tracker.Active("post:404"); got != 0 {
		t.Errorf("Active() = %d for unknown key, want 0", got)
	}
}

func TestTrackerForget(t *testing.T) {
	tracker := NewTracker()
	tracker.Update("post:1", 600, 300, 5)
	tracker.Forget("post:1")
	if got := tracker.Active("post:1"); got != 0 {
		t.Errorf("Active() = %d after Forget, want 0", got)
	}
}
