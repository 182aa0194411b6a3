package model

import "time"

// DerivedSignals are the few non-fingerprint signals that persist across
// scans for change detection.
type DerivedSignals struct {
	PricingModel string `json:"pricing_model,omitempty"`
	ProductCount int    `json:"product_count"`

	// Summary is the extracted business summary; kept so content changes
	// on the home page can be graded by text similarity.
	Summary string `json:"summary,omitempty"`
}

// SiteSnapshot is the persisted record of one scan of one URL: a mapping
// from page type to content fingerprint plus derived signals. Snapshots
// are append-only; change detection reads only the most recent prior one.
type SiteSnapshot struct {
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url"`
	ScanID    string    `json:"scan_id"`
	CreatedAt time.Time `json:"created_at"`

	// Fingerprints only contains page types actually observed in the scan.
	Fingerprints map[PageType]string `json:"fingerprints"`

	Signals DerivedSignals `json:"signals"`
}

// SnapshotFromGraph builds the snapshot persisted after a scan.
func SnapshotFromGraph(url, scanID string, g *PageGraph, signals DerivedSignals) *SiteSnapshot {
	snap := &SiteSnapshot{
		URL:          url,
		ScanID:       scanID,
		CreatedAt:    time.Now().UTC(),
		Fingerprints: make(map[PageType]string),
		Signals:      signals,
	}
	if g == nil {
		return snap
	}
	for _, p := range g.Pages {
		if p.Fingerprint == "" {
			continue
		}
		// First page of a type wins, matching PageGraph type slots.
		if _, ok := snap.Fingerprints[p.Type]; !ok {
			snap.Fingerprints[p.Type] = p.Fingerprint
		}
	}
	return snap
}
