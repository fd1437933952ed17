package gallery

import (
	"reflect"
	"testing"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		name   string
		photos []Photo
		want   []Photo
	}{
		{
			name:   "empty",
			photos: []Photo{},
			want:   []Photo{},
		},
		{
			name: "highlight first regardless of ord",
			photos: []Photo{
				{URL: "a", Ord: 2},
				{URL: "b", Ord: 1, Highlight: true},
				{URL: "c", Ord: 1},
			},
			want: []Photo{
				{URL: "b", Ord: 1, Highlight: true},
				{URL: "c", Ord: 1},
				{URL: "a", Ord: 2},
			},
		},
		{
			name: "no highlight sorts ascending by ord",
			photos: []Photo{
				{URL: "a", Ord: 7},
				{URL: "b", Ord: 3},
				{URL: "c", Ord: 5},
			},
			want: []Photo{
				{URL: "b", Ord: 3},
				{URL: "c", Ord: 5},
				{URL: "a", Ord: 7},
			},
		},
		{
			name: "equal ord keeps input order",
			photos: []Photo{
				{URL: "a", Ord: 1},
				{URL: "b", Ord: 1},
				{URL: "c", Ord: 1},
			},
			want: []Photo{
				{URL: "a", Ord: 1},
				{URL: "b", Ord: 1},
				{URL: "c", Ord: 1},
			},
		},
		{
			name: "ord values need not be contiguous or unique",
			photos: []Photo{
				{URL: "a", Ord: 100},
				{URL: "b", Ord: -3},
				{URL: "c", Ord: 100},
				{URL: "d", Ord: 0},
			},
			want: []Photo{
				{URL: "b", Ord: -3},
				{URL: "d", Ord: 0},
				{URL: "a", Ord: 100},
				{URL: "c", Ord: 100},
			},
		},
		{
			name: "first seen highlight wins over smaller ord",
			photos: []Photo{
				{URL: "a", Ord: 5, Highlight: true},
				{URL: "b", Ord: 1, Highlight: true},
				{URL: "c", Ord: 0},
			},
			want: []Photo{
				{URL: "a", Ord: 5, Highlight: true},
				{URL: "b", Ord: 1, Highlight: true},
				{URL: "c", Ord: 0},
			},
		},
		{
			name: "missing URL is skipped",
			photos: []Photo{
				{URL: "a", Ord: 2},
				{URL: "", Ord: 0},
				{URL: "b", Ord: 1},
			},
			want: []Photo{
				{URL: "b", Ord: 1},
				{URL: "a", Ord: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(tt.photos)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderIdempotent(t *testing.T) {
	inputs := [][]Photo{
		{
			{URL: "a", Ord: 2},
			{URL: "b", Ord: 1, Highlight: true},
			{URL: "c", Ord: 1},
		},
		{
			{URL: "a", Ord: 5, Highlight: true},
			{URL: "b", Ord: 1, Highlight: true},
			{URL: "c", Ord: 3, Highlight: true},
		},
		{
			{URL: "a", Ord: 1},
			{URL: "b", Ord: 1},
		},
		{},
	}
	for _, photos := range inputs {
		once := Order(photos)
		twice := Order(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Order not idempotent: first %v, second %v", once, twice)
		}
	}
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	photos := []Photo{
		{URL: "a", Ord: 2},
		{URL: "b", Ord: 1},
	}
	want := []Photo{
		{URL: "a", Ord: 2},
		{URL: "b", Ord: 1},
	}
	_ = Order(photos)
	if !reflect.DeepEqual(photos, want) {
		t.Errorf("Order mutated its input: %v", photos)
	}
}
