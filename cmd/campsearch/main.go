package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "campsearch",
	Short: "VSM search engine for campsite reviews",
	Long: `campsearch ranks campsite venues by relevance of their reviews to a
free-text query, with intent detection (e.g. "terbaik") and region
filtering (e.g. "di jawa tengah").

Example usage:
  campsearch build                 # Build the index from the review corpus
  campsearch serve                 # Serve the search API
  campsearch serve --port 9000     # Serve on a custom port`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("campsearch v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default settings are used when unset)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
