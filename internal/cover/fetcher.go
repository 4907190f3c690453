// Package cover fetches remote cover images and turns them into small
// cached thumbnails suitable for constrained display surfaces.
package cover

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// maxDimension caps the longest side of a thumbnail. A full-resolution
	// bitmap is never kept; every fetched image is reduced before caching.
	maxDimension = 120
	jpegQuality  = 60

	// maxDownload caps how many raw bytes one cover may cost.
	maxDownload = 8 << 20
)

// Fetcher downloads covers and serves thumbnails through a bounded cache.
type Fetcher struct {
	http  *http.Client
	cache *Cache
	log   *slog.Logger
}

func NewFetcher(log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{
		http:  &http.Client{Timeout: 20 * time.Second},
		cache: NewCache(),
		log:   log,
	}
}

// Cache exposes the underlying cache, mainly for tests.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// Reset clears the cache. Called at the start of a top-level sync so
// thumbnails never outlive the book set they were fetched for.
func (f *Fetcher) Reset() {
	f.cache.Clear()
}

// Thumbnail returns a small JPEG for the image at url, from cache when
// possible. Any failure yields nil; a missing cover never aborts the
// caller's larger fetch.
func (f *Fetcher) Thumbnail(ctx context.Context, url string) []byte {
	if url == "" {
		return nil
	}
	if data, ok := f.cache.Get(url); ok {
		return data
	}
	raw, err := f.download(ctx, url)
	if err != nil {
		f.log.Debug("cover download failed", "url", url, "error", err)
		return nil
	}
	thumb, err := thumbnail(raw)
	if err != nil {
		f.log.Debug("cover decode failed", "url", url, "error", err)
		return nil
	}
	f.cache.Put(url, thumb)
	return thumb
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}

// thumbnail decodes raw image bytes, scales the longest side down to
// maxDimension, and re-encodes as JPEG.
func thumbnail(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image")
	}

	dw, dh := w, h
	if longest := max(w, h); longest > maxDimension {
		scale := float64(maxDimension) / float64(longest)
		dw = max(1, int(float64(w)*scale))
		dh = max(1, int(float64(h)*scale))
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
