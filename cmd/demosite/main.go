// Standalone entry for the fixture merchant site, for running it apart
// from the scanner binary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/meridianpay/sitescan/internal/demosite"
	"github.com/meridianpay/sitescan/internal/logging"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	logger := logging.NewJSONLoggerTo(os.Stderr, "demosite")
	if err := demosite.New(logger).ListenAndServe(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
