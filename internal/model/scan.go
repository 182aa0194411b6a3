package model

// ScanRequest is the invocation contract input: one target URL plus an
// optional business-name hint. Immutable once created.
type ScanRequest struct {
	// URL is the target website to scan.
	URL string `json:"target_url" validate:"required,url"`

	// BusinessName is an optional hint used by the business classifiers.
	BusinessName string `json:"business_name,omitempty"`
}

// ScanStatus is the terminal state of a scan.
type ScanStatus string

const (
	StatusSuccess ScanStatus = "SUCCESS"
	StatusFailed  ScanStatus = "FAILED"
)

// ScanStatusInfo carries the scan outcome plus, on failure, the reason
// code and whether a retry is worthwhile.
type ScanStatusInfo struct {
	Status    ScanStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	Retryable bool       `json:"retryable,omitempty"`
}
