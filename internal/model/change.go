package model

// ChangeType identifies what kind of difference was detected between two
// snapshots of the same URL.
type ChangeType string

const (
	ChangeContent ChangeType = "content_change"
	ChangePricing ChangeType = "pricing_change"
	ChangeProduct ChangeType = "product_change"
)

// Severity ranks a change for downstream consumers.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityInfo     Severity = "info"
)

// Change is one typed, severity-ranked difference.
type Change struct {
	Type     ChangeType `json:"type"`
	Severity Severity   `json:"severity"`
	PageType PageType   `json:"page_type,omitempty"`
	Detail   string     `json:"detail"`
}

// ChangeSet is the change detector's output. Baseline is true when no
// prior snapshot existed, which is not an error: there was simply nothing
// to compare against.
type ChangeSet struct {
	Baseline bool     `json:"baseline"`
	Changes  []Change `json:"changes"`
}
