package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body. A single attempt
	// is made; failures are returned to the caller as-is.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
