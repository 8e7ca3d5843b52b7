package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foodgramctl",
	Short: "Operational tooling for the foodgram backend",
	Long:  "foodgramctl runs schema migrations and loads the tag/ingredient reference catalog.",
}

func main() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("foodgramctl: %v", err)
	}
}
