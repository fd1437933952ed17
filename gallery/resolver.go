package gallery

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	// Decoders for the image types the upload handler accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Dimensions are the natural pixel dimensions of a decoded image.
type Dimensions struct {
	Width  int
	Height int
}

// ProbeFunc fetches the natural dimensions behind a URL.
type ProbeFunc func(ctx context.Context, url string) (Dimensions, error)

// SharedCache is an optional second cache level for probed dimensions,
// shared between server instances (see the cache package).
type SharedCache interface {
	Get(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, value string, ttl time.Duration) error
}

const (
	probeTimeout   = 10 * time.Second
	sharedCacheTTL = 7 * 24 * time.Hour
)

type resolveEntry struct {
	done chan struct{}
	dims Dimensions
	err  error
}

// Resolver looks up natural image dimensions by URL. Results (including
// failures) are cached for the resolver's lifetime and lookups for the same
// URL are collapsed into a single probe: concurrent callers wait on the
// in-flight one. One lookup failing never affects other URLs.
type Resolver struct {
	probe   ProbeFunc
	shared  SharedCache
	entries cmap.ConcurrentMap[string, *resolveEntry]
}

// NewResolver creates a Resolver. probe defaults to HTTPProbe, shared may be
// nil to run with the in-process cache only.
func NewResolver(probe ProbeFunc, shared SharedCache) *Resolver {
	if probe == nil {
		probe = HTTPProbe
	}
	return &Resolver{
		probe:   probe,
		shared:  shared,
		entries: cmap.New[*resolveEntry](),
	}
}

// Resolve returns the natural dimensions for url, probing at most once per
// URL per resolver lifetime. It blocks until the (possibly already in-flight)
// lookup completes or ctx is cancelled; cancellation abandons the wait but
// not the lookup itself, so later callers still get the result.
func (r *Resolver) Resolve(ctx context.Context, url string) (Dimensions, error) {
	if url == "" {
		return Dimensions{}, fmt.Errorf("empty URL")
	}
	entry := &resolveEntry{done: make(chan struct{})}
	actual := r.entries.Upsert(url, entry, func(exist bool, valueInMap, newValue *resolveEntry) *resolveEntry {
		if exist {
			return valueInMap
		}
		return newValue
	})
	if actual == entry {
		go r.run(url, entry)
	}
	select {
	case <-actual.done:
		return actual.dims, actual.err
	case <-ctx.Done():
		return Dimensions{}, ctx.Err()
	}
}

// run performs the single probe for a URL. It uses its own deadline rather
// than a caller's context: the result is shared by every waiter.
func (r *Resolver) run(url string, entry *resolveEntry) {
	defer close(entry.done)
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if r.shared != nil {
		if cached, err := r.shared.Get(ctx, dimensionKey(url)); err == nil {
			if dims, err := parseDimensions(cached); err == nil {
				entry.dims = dims
				return
			}
		}
	}
	entry.dims, entry.err = r.probe(ctx, url)
	if entry.err != nil {
		return
	}
	if r.shared != nil {
		value := fmt.Sprintf("%dx%d", entry.dims.Width, entry.dims.Height)
		// Shared cache is best-effort
		_ = r.shared.Store(ctx, dimensionKey(url), value, sharedCacheTTL)
	}
}

func dimensionKey(url string) string {
	return "dims:" + url
}

func parseDimensions(s string) (Dimensions, error) {
	var dims Dimensions
	if _, err := fmt.Sscanf(s, "%dx%d", &dims.Width, &dims.Height); err != nil {
		return Dimensions{}, err
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		return Dimensions{}, fmt.Errorf("invalid dimensions %q", s)
	}
	return dims, nil
}

// HTTPProbe fetches the image header behind a URL and decodes its
// dimensions without loading the whole pixel data into memory.
func HTTPProbe(ctx context.Context, url string) (Dimensions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Dimensions{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Dimensions{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Dimensions{}, fmt.Errorf("status: %d", resp.StatusCode)
	}
	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
