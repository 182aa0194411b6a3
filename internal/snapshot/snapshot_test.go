package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "scans.db"), logging.Nop{})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_PutAndGetLatest(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			older := &model.SiteSnapshot{
				URL:       "https://acme.example/",
				ScanID:    "scan-1",
				CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Fingerprints: map[model.PageType]string{
					model.PageHome:    "aaa",
					model.PagePrivacy: "bbb",
				},
				Signals: model.DerivedSignals{PricingModel: "subscription", ProductCount: 3},
			}
			newer := &model.SiteSnapshot{
				URL:       "https://acme.example/",
				ScanID:    "scan-2",
				CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Fingerprints: map[model.PageType]string{
					model.PageHome: "ccc",
				},
				Signals: model.DerivedSignals{PricingModel: "one_time", ProductCount: 5},
			}

			if err := store.Put(ctx, older); err != nil {
				t.Fatalf("Put older: %v", err)
			}
			if err := store.Put(ctx, newer); err != nil {
				t.Fatalf("Put newer: %v", err)
			}
			if older.ID == "" || newer.ID == "" {
				t.Error("Put should assign IDs")
			}

			got, err := store.GetLatest(ctx, "https://acme.example/")
			if err != nil {
				t.Fatalf("GetLatest: %v", err)
			}
			if got.ScanID != "scan-2" {
				t.Errorf("ScanID = %q, want scan-2", got.ScanID)
			}
			if got.Fingerprints[model.PageHome] != "ccc" {
				t.Errorf("home fingerprint = %q", got.Fingerprints[model.PageHome])
			}
			if got.Signals.PricingModel != "one_time" || got.Signals.ProductCount != 5 {
				t.Errorf("signals = %+v", got.Signals)
			}
		})
	}
}

func TestStore_GetLatestUnknownURL(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.GetLatest(context.Background(), "https://never-scanned.example/"); err != ErrNotFound {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}
