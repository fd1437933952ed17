package handlers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeDimensionsHTTP(t *testing.T) {
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))); err != nil {
		t.Fatalf("cannot encode png: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	dims, err := probeDimensions(context.Background(), server.URL+"/image.png")
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if dims.Width != 40 || dims.Height != 30 {
		t.Errorf("expected 40x30, got %dx%d", dims.Width, dims.Height)
	}
}

func TestProbeDimensionsBadLocalReference(t *testing.T) {
	if _, err := probeDimensions(context.Background(), localPhotoPrefix+"nope"); err == nil {
		t.Error("expected an error for a malformed photo reference")
	}
}
