package evidence

import "context"

// Fetcher retrieves raw document bytes by URL. Documents are fetched fresh
// per request; raw bytes are never cached.
type Fetcher interface {
	// Fetch performs the retrieval. A non-2xx upstream response is an
	// EUNAVAILABLE error; the caller treats any fetch failure as fatal
	// for the request.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
