package pagegen

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const defaultFetchTimeout = 10 * time.Second

// Dimensions holds the pixel size of a remote image.
type Dimensions struct {
	Width  int
	Height int
}

// ImageInspector resolves the pixel dimensions of an image URL. The
// generator calls it once per row when dimension tokens are in play, so
// implementations must honor context cancellation.
type ImageInspector interface {
	Measure(ctx context.Context, url string) (Dimensions, error)
}

// HTTPInspector fetches images over HTTP and decodes only the stream header
// to read their dimensions.
type HTTPInspector struct {
	client  *http.Client
	retries int
}

// NewHTTPInspector returns an inspector with a per-request timeout and the
// given number of extra attempts after a failed fetch.
func NewHTTPInspector(timeout time.Duration, retries int) *HTTPInspector {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPInspector{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
	}
}

// Measure fetches url and reports its pixel size. Every failure mode wraps
// ErrUnmeasurable so callers can treat "no dimensions" uniformly; the row
// that needed them is skipped, not the run.
func (in *HTTPInspector) Measure(ctx context.Context, url string) (Dimensions, error) {
	var lastErr error
	for attempt := 0; attempt <= in.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Dimensions{}, fmt.Errorf("%w: %s: %v", ErrUnmeasurable, url, err)
		}
		dims, err := in.fetch(ctx, url)
		if err == nil {
			return dims, nil
		}
		lastErr = err
	}
	return Dimensions{}, fmt.Errorf("%w: %s: %v", ErrUnmeasurable, url, lastErr)
}

func (in *HTTPInspector) fetch(ctx context.Context, url string) (Dimensions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Dimensions{}, err
	}
	resp, err := in.client.Do(req)
	if err != nil {
		return Dimensions{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Dimensions{}, fmt.Errorf("status %s", resp.Status)
	}
	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
