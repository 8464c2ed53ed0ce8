package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const service = "storefront"

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "ModaVista storefront API",
	Long: `ModaVista storefront: catalog browsing and a session-authenticated
shopping cart over an in-memory store seeded with demo data on start.

Configuration is read from STOREFRONT_* environment variables and an
optional .env file.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
