package model

// Failure reason codes surfaced on the report when the entry page is
// unreachable.
const (
	FailDNS     = "DNS_FAIL"
	FailTimeout = "TIMEOUT"
	FailSSL     = "SSL_ERROR"
	FailHTTP403 = "HTTP_403"
)

// RegistrationAgeUnknown marks a failed or missing registration lookup.
const RegistrationAgeUnknown = -1

// DomainHealth is the domain health checker's finding for the target.
type DomainHealth struct {
	Reachable  bool `json:"reachable"`
	StatusCode int  `json:"status_code,omitempty"`

	HTTPSValid       bool `json:"https_valid"`
	CertDaysToExpiry int  `json:"cert_days_to_expiry,omitempty"`

	RedirectCount int `json:"redirect_count"`

	// RegistrationAgeDays is RegistrationAgeUnknown when every lookup in
	// the chain failed.
	RegistrationAgeDays int `json:"registration_age_days"`

	FailureReason string `json:"failure_reason,omitempty"`
	Retryable     bool   `json:"retryable,omitempty"`
}
