package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meridianpay/sitescan/internal/demosite"
	"github.com/meridianpay/sitescan/internal/logging"
)

var demositeCmd = &cobra.Command{
	Use:   "demosite",
	Short: "Serve the fixture merchant site for local scanning",
	Long: `Serves a small fake merchant site. Control endpoints under /demo/ flip
page versions so repeated scans observe content and pricing changes.`,
	RunE: func(*cobra.Command, []string) error {
		logger := logging.NewJSONLoggerTo(os.Stderr, "sitescan")
		return demosite.New(logger).ListenAndServe(demositeAddr)
	},
}

var demositeAddr string

func init() {
	demositeCmd.Flags().StringVar(&demositeAddr, "addr", ":9090", "Listen address")
	rootCmd.AddCommand(demositeCmd)
}
