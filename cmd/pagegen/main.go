// Package main provides the pagegen CLI tool for rendering spreadsheet rows into static pages.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A local .env complements the PAGEGEN_* environment, mirroring how the
	// tool runs in CI. Missing files are fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
