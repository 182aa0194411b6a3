package crawl

import "time"

// Config holds the crawl budgets.
type Config struct {
	// MaxPages bounds pages in the graph, entry page included.
	MaxPages int

	// MaxDepth bounds link distance from the entry page.
	MaxDepth int

	// MaxConcurrency bounds in-flight fetches.
	MaxConcurrency int

	// ScanDeadline bounds the whole crawl.
	ScanDeadline time.Duration

	// RetryBackoff is the wait before the single retry of a transient
	// fetch failure; it doubles per attempt.
	RetryBackoff time.Duration

	// FetchesPerSecond rate-limits polite fetching across all workers.
	// Zero disables the limiter.
	FetchesPerSecond float64
}

// DefaultConfig returns the standard scan budgets.
func DefaultConfig() Config {
	return Config{
		MaxPages:         20,
		MaxDepth:         2,
		MaxConcurrency:   10,
		ScanDeadline:     600 * time.Second,
		RetryBackoff:     2 * time.Second,
		FetchesPerSecond: 8,
	}
}
