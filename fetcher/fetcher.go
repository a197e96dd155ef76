package fetcher

// Fetcher retrieves the raw markup of a single page. Implementations make
// exactly one attempt per call; there is no retry or backoff.
type Fetcher interface {
	Fetch(url string) (string, error)
}
