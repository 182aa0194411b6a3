// Package cli holds the sitescan commands.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitescan",
	Short: "Automated website due-diligence scanner",
	Long: `sitescan crawls a bounded subset of a business website, scores it for
compliance, SEO and content risk, suggests merchant categories, and reports
what changed since the previous scan of the same URL.`,
}

// Execute loads the environment and runs the selected command.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}
