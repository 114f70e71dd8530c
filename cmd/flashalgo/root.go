package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashalgo",
	Short: "Toolkit for building CMSIS-Pack flash algorithms",
	Long: "flashalgo generates the entry-point binding and device descriptor data\n" +
		"for a CMSIS-Pack flash algorithm from a YAML manifest, and inspects the\n" +
		"descriptor sections of built images.",
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(targetsCmd)
}
