package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianpay/sitescan/internal/engine"
	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/snapshot"
	"github.com/meridianpay/sitescan/internal/webclient"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan one website and print the report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var (
	scanBusinessName string
	scanDBPath       string
	scanCacheTTL     time.Duration
	scanMaxPages     int
	scanUserAgent    string
)

func init() {
	scanCmd.Flags().StringVar(&scanBusinessName, "business-name", "", "Business-name hint for the classifiers")
	scanCmd.Flags().StringVar(&scanDBPath, "db", defaultDBPath(), "Snapshot database path (SITESCAN_DB overrides the default)")
	scanCmd.Flags().DurationVar(&scanCacheTTL, "cache-ttl", 0, "Page-fetch cache TTL; 0 disables the cache")
	scanCmd.Flags().IntVar(&scanMaxPages, "max-pages", 0, "Override the page budget (0 = default)")
	scanCmd.Flags().StringVar(&scanUserAgent, "user-agent", "", "Override the request User-Agent")

	rootCmd.AddCommand(scanCmd)
}

func defaultDBPath() string {
	if p := os.Getenv("SITESCAN_DB"); p != "" {
		return p
	}
	return "sitescan.db"
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := logging.NewJSONLoggerTo(os.Stderr, "sitescan")

	wcCfg := webclient.DefaultConfig()
	if scanUserAgent != "" {
		wcCfg.UserAgent = scanUserAgent
	}
	wc, err := webclient.NewNetHTTPClient(wcCfg, logger, nil)
	if err != nil {
		return fmt.Errorf("build web client: %w", err)
	}
	defer wc.Close()

	var client webclient.WebClient = wc
	if scanCacheTTL > 0 {
		client = webclient.NewCachedClient(wc, webclient.NewMemoryCache(), scanCacheTTL, logger)
	}

	store, err := snapshot.NewSQLiteStore(scanDBPath, logger)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	cfg := engine.DefaultConfig()
	if scanMaxPages > 0 {
		cfg.Crawl.MaxPages = scanMaxPages
	}

	eng := engine.New(client, store, cfg, logger)
	defer eng.Flush()
	rep, err := eng.Scan(cmd.Context(), model.ScanRequest{
		URL:          args[0],
		BusinessName: scanBusinessName,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if rep.ScanStatus.Status == model.StatusFailed {
		return fmt.Errorf("scan failed: %s", rep.ScanStatus.Reason)
	}
	return nil
}
