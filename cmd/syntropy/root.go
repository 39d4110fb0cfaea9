package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "syntropy",
	Short: "Thermodynamic quality scoring for text and entities",
	Long: "Syntropy scores content and entities for productive structure versus\n" +
		"destructive noise: cheap compression-based signals first, a multi-scale\n" +
		"escalation scan only when the cheap pass is ambiguous.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(factCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// stdLogger adapts the stdlib logger to the injected Logger interfaces.
type stdLogger struct{}

func (stdLogger) Log(level, stage, message, detail string) {
	log.Printf("[%s] %s: %s (%s)", level, stage, message, detail)
}
