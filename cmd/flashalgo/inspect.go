package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"omibyte.io/flashalgo/image"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image.elf>",
	Short: "Print the descriptor sections of a built algorithm image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info, err := image.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}

		d := info.Device
		fmt.Printf("Device:           %s\n", d.Name)
		fmt.Printf("Flash:            0x%08X, %d bytes\n", d.BaseAddr, d.Size)
		fmt.Printf("Page size:        0x%X\n", d.PageSize)
		fmt.Printf("Erased byte:      0x%02X\n", d.Empty)
		fmt.Printf("Timeouts:         program %d ms, erase %d ms\n", d.ProgramTimeout, d.EraseTimeout)
		fmt.Printf("Sector regions:   %d\n", len(d.Sectors))
		for i, s := range d.Sectors {
			fmt.Printf("  #%d: size 0x%X at 0x%08X\n", i, s.Size, d.BaseAddr+s.Addr)
		}

		if info.SelfTest == nil {
			fmt.Println("No self-test metadata.")
			return
		}
		st := info.SelfTest
		fmt.Printf("Self-test RAM:    [0x%08X, 0x%08X)\n", st.RAMStart, st.RAMEnd)
		fmt.Printf("Self-tests:       %d\n", len(st.Tests))
		for _, t := range st.Tests {
			fmt.Printf("  #%d: %s\n", t.ID, t.Name)
		}
	},
}
