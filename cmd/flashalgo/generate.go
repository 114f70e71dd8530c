package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"omibyte.io/flashalgo/gen"
	"omibyte.io/flashalgo/manifest"
)

var generateOpts = struct {
	manifestPath string
	outDir       string
	blobs        bool
}{}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the entry binding and descriptor data from a manifest",
	Long: "Generate reads an algorithm manifest and emits the Go binding that\n" +
		"exports the entry symbols and places the FlashDevice and SelfTestInfo\n" +
		"records in their sections.",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := manifest.Load(generateOpts.manifestPath)
		if err != nil {
			log.Fatal(err)
		}

		err = gen.Generate(gen.Options{
			Manifest:   m,
			OutDir:     generateOpts.outDir,
			WriteBlobs: generateOpts.blobs,
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("generated %s binding in %s\n", m.Name, generateOpts.outDir)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.manifestPath, "manifest", "m", "algorithm.yaml", "algorithm manifest file")
	generateCmd.Flags().StringVarP(&generateOpts.outDir, "out", "o", ".", "output directory")
	generateCmd.Flags().BoolVar(&generateOpts.blobs, "blobs", false, "also write raw descriptor section images")
}
