package featurestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kevinburke/rest"

	"indiamap/internal/db"
)

// Source yields the raw bytes of a GeoJSON dataset.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Location() string
}

// SourceFor returns an HTTPSource for http(s) URLs and a FileSource for
// anything else.
func SourceFor(location string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location)
	}
	return FileSource{Path: location}
}

// FileSource reads the dataset from a local file.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

func (f FileSource) Location() string { return f.Path }

// HTTPSource fetches the dataset with a single GET request.
type HTTPSource struct {
	URL    string
	Client *rest.Client
}

// NewHTTPSource returns an HTTPSource for url using a default rest client.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: rest.NewClient("", "", "")}
}

// Fetch performs the GET. Responses outside 2xx are returned as errors by the
// rest client.
func (h *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := h.Client.NewRequest("GET", h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	var body json.RawMessage
	if err := h.Client.Do(req.WithContext(ctx), &body); err != nil {
		return nil, fmt.Errorf("GET %s: %w", h.URL, err)
	}
	return body, nil
}

func (h *HTTPSource) Location() string { return h.URL }

// Cache persists fetched dataset bodies. *db.DB implements it.
type Cache interface {
	GetDataset(ctx context.Context, source string) (*db.CachedDataset, error)
	PutDataset(ctx context.Context, source string, body []byte, fetchedAt time.Time) error
}

// CachedSource serves a dataset from Cache while it is younger than TTL and
// refetches from Source otherwise. A zero TTL bypasses the cache.
type CachedSource struct {
	Source Source
	Cache  Cache
	TTL    time.Duration

	// Observe, if set, is told whether each Fetch was served from the cache.
	Observe func(hit bool)

	now func() time.Time
}

func (c *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	if c.TTL <= 0 || c.Cache == nil {
		return c.Source.Fetch(ctx)
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	loc := c.Source.Location()

	cached, err := c.Cache.GetDataset(ctx, loc)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if cached != nil && now().Sub(cached.FetchedAt) < c.TTL {
		c.observe(true)
		return cached.Body, nil
	}
	c.observe(false)

	data, err := c.Source.Fetch(ctx)
	if err != nil {
		// A stale copy beats no map at all.
		if cached != nil {
			return cached.Body, nil
		}
		return nil, err
	}
	if err := c.Cache.PutDataset(ctx, loc, data, now()); err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}
	return data, nil
}

func (c *CachedSource) Location() string { return c.Source.Location() }

func (c *CachedSource) observe(hit bool) {
	if c.Observe != nil {
		c.Observe(hit)
	}
}
