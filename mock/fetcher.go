package mock

import (
	"context"

	"github.com/lithoslabs/evidence"
)

var _ evidence.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of evidence.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
