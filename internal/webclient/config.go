package webclient

import "time"

// Config holds the fetch timeouts and limits shared by every request.
type Config struct {
	// ConnectTimeout bounds dialing (and TLS handshake) per attempt.
	ConnectTimeout time.Duration

	// RequestTimeout bounds one full request/response cycle.
	RequestTimeout time.Duration

	// MaxRedirects caps redirect following; beyond it the fetch fails.
	MaxRedirects int

	// MaxBodyBytes truncates response bodies; pages past this size carry
	// no useful extra signal for classification.
	MaxBodyBytes int64

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns the budgets used for scan fetches.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		RequestTimeout: 12 * time.Second,
		MaxRedirects:   10,
		MaxBodyBytes:   2 << 20, // 2 MiB
		UserAgent:      "sitescan/1.0 (+https://github.com/meridianpay/sitescan)",
	}
}
