package gallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolveDeduplicatesLookups(t *testing.T) {
	var probes int32
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		atomic.AddInt32(&probes, 1)
		time.Sleep(10 * time.Millisecond)
		return Dimensions{Width: 640, Height: 480}, nil
	}
	resolver := NewResolver(probe, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dims, err := resolver.Resolve(context.Background(), "same-url")
			if err != nil {
				t.Errorf("Resolve() error: %v", err)
			}
			if dims.Width != 640 || dims.Height != 480 {
				t.Errorf("Resolve() = %+v", dims)
			}
		}()
	}
	wg.Wait()
	if got := atomic.LoadInt32(&probes); got != 1 {
		t.Errorf("probe ran %d times, want 1", got)
	}
	// A later call must also hit the cache
	if _, err := resolver.Resolve(context.Background(), "same-url"); err != nil {
		t.Errorf("cached Resolve() error: %v", err)
	}
	if got := atomic.LoadInt32(&probes); got != 1 {
		t.Errorf("probe ran %d times after cached call, want 1", got)
	}
}

func TestResolveFailureIsCachedAndIsolated(t *testing.T) {
	var probes int32
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		atomic.AddInt32(&probes, 1)
		if url == "broken" {
			return Dimensions{}, fmt.Errorf("unreachable")
		}
		return Dimensions{Width: 100, Height: 50}, nil
	}
	resolver := NewResolver(probe, nil)

	if _, err := resolver.Resolve(context.Background(), "broken"); err == nil {
		t.Error("expected error for broken URL")
	}
	// Single attempt per URL per lifetime - the failure is remembered
	if _, err := resolver.Resolve(context.Background(), "broken"); err == nil {
		t.Error("expected cached error for broken URL")
	}
	if got := atomic.LoadInt32(&probes); got != 1 {
		t.Errorf("probe ran %d times for broken URL, want 1", got)
	}
	// Other URLs are unaffected
	dims, err := resolver.Resolve(context.Background(), "fine")
	if err != nil {
		t.Errorf("Resolve(fine) error: %v", err)
	}
	if dims.Width != 100 || dims.Height != 50 {
		t.Errorf("Resolve(fine) = %+v", dims)
	}
}

func TestResolveEmptyURL(t *testing.T) {
	resolver := NewResolver(func(ctx context.Context, url string) (Dimensions, error) {
		t.Error("probe must not run for empty URL")
		return Dimensions{}, nil
	}, nil)
	if _, err := resolver.Resolve(context.Background(), ""); err == nil {
		t.Error("expected error for empty URL")
	}
}

type fakeShared struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	stores int
}

func (f *fakeShared) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	v, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return v, nil
}

func (f *fakeShared) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores++
	f.values[key] = value
	return nil
}

func TestResolveSharedCache(t *testing.T) {
	shared := &fakeShared{values: map[string]string{"dims:warm": "320x240"}}
	var probes int32
	probe := func(ctx context.Context, url string) (Dimensions, error) {
		atomic.AddInt32(&probes, 1)
		return Dimensions{Width: 111, Height: 222}, nil
	}
	resolver := NewResolver(probe, shared)

	// Warm entry skips the probe entirely
	dims, err := resolver.Resolve(context.Background(), "warm")
	if err != nil {
		t.Fatalf("Resolve(warm) error: %v", err)
	}
	if dims.Width != 320 || dims.Height != 240 {
		t.Errorf("Resolve(warm) = %+v", dims)
	}
	if atomic.LoadInt32(&probes) != 0 {
		t.Error("probe ran despite shared cache hit")
	}
	// Cold entry probes and writes back
	if _, err = resolver.Resolve(context.Background(), "cold"); err != nil {
		t.Fatalf("Resolve(cold) error: %v", err)
	}
	if atomic.LoadInt32(&probes) != 1 {
		t.Errorf("probe ran %d times for cold URL, want 1", atomic.LoadInt32(&probes))
	}
	shared.mu.Lock()
	stored := shared.values["dims:cold"]
	shared.mu.Unlock()
	if stored != "111x222" {
		t.Errorf("shared cache value = %q, want 111x222", stored)
	}
}

func TestHTTPProbe(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 34))); err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.png":
			w.Header().Set("content-type", "image/png")
			_, _ = w.Write(buf.Bytes())
		case "/corrupt.png":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dims, err := HTTPProbe(context.Background(), server.URL+"/photo.png")
	if err != nil {
		t.Fatalf("HTTPProbe() error: %v", err)
	}
	if dims.Width != 12 || dims.Height != 34 {
		t.Errorf("HTTPProbe() = %+v, want 12x34", dims)
	}
	if _, err = HTTPProbe(context.Background(), server.URL+"/corrupt.png"); err == nil {
		t.Error("expected error for corrupt image")
	}
	if _, err = HTTPProbe(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		in      string
		want    Dimensions
		wantErr bool
	}{
		{"640x480", Dimensions{640, 480}, false},
		{"1x1", Dimensions{1, 1}, false},
		{"0x100", Dimensions{}, true},
		{"garbage", Dimensions{}, true},
		{"", Dimensions{}, true},
	}
	for _, tt := range tests {
		got, err := parseDimensions(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDimensions(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseDimensions(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
