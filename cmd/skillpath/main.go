// Package main provides the skillpath CLI: assessment interpretation,
// resource recommendation, and learning path generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "Learning path recommendations from interview assessments",
	Long:  "skillpath turns per-skill interview assessment scores into a prioritized learning path: it finds weak skills for a target job, retrieves and ranks matching learning resources, and groups them into short, mid and long term goals.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
