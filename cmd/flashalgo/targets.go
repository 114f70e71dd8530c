package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/flashalgo/targets"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the chips in the built-in target table",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range targets.All() {
			fmt.Printf("%-16s flash 0x%08X+0x%X, page 0x%X, ram [0x%08X, 0x%08X)\n",
				t.Chip, t.FlashAddress, t.FlashSize, t.PageSize, t.RAMStartAddress, t.RAMEndAddress)
		}
	},
}
