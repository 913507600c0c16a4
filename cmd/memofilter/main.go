// Command memofilter encodes, decodes and inspects memo filter links.
package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("memofilter failed", "err", err)
		os.Exit(1)
	}
}
