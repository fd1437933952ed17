package models

import "testing"

func TestPhoto_GetPathOrThumb(t *testing.T) {
	photo := Photo{
		ID:     1234,
		PostID: 56,
		Name:   "Paella.JPG",
	}
	if got := photo.GetPath(); got != "post/56/1234.jpg" {
		t.Errorf("GetPath() = %v", got)
	}
	if got := photo.GetThumbPath(); got != "post/56/1234_thumb.jpg" {
		t.Errorf("GetThumbPath() = %v", got)
	}
}

func TestPhoto_BeforeSave(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "dinner.jpg", "dinner.jpg"},
		{"spaces and unicode", "côte de bœuf.jpg", "c_te_de_b_uf.jpg"},
		{"leading dot", ".hidden", "_hidden"},
		{"path separators", "../../etc/passwd", "_._.._etc_passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := Photo{Name: tt.in}
			if err := photo.BeforeSave(nil); err != nil {
				t.Fatalf("BeforeSave() error = %v", err)
			}
			if photo.Name != tt.want {
				t.Errorf("Name = %q, want %q", photo.Name, tt.want)
			}
		})
	}
}
