package gen

import (
	"fmt"
	"strings"

	"omibyte.io/flashalgo/manifest"
)

// EntrySource renders the entry-point binding: one package-level Slot plus
// the exported Init, UnInit, EraseSector and ProgramPage shims, and the
// EraseChip and Verify shims when the manifest enables those features. The
// //go:export pragma pins the symbol names the host looks up; the linker
// script gathers the .entry section.
func EntrySource(m *manifest.Manifest) ([]byte, error) {
	inst := "*" + m.Type

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by flashalgo generate (target %s); DO NOT EDIT.\n\n", m.Name)
	fmt.Fprintf(&b, "package %s\n\n", m.Package)
	fmt.Fprintf(&b, "import \"omibyte.io/flashalgo/algo\"\n\n")

	fmt.Fprintf(&b, "// Static capability checks: a type that does not satisfy the enabled\n")
	fmt.Fprintf(&b, "// features fails to compile here instead of faulting on target.\n")
	fmt.Fprintf(&b, "var (\n")
	fmt.Fprintf(&b, "\t_ algo.Constructor[%s] = %s\n", inst, m.Constructor)
	if m.Features.EraseChip {
		fmt.Fprintf(&b, "\t_ algo.ChipEraser = (%s)(nil)\n", inst)
	}
	if m.Features.Verify {
		fmt.Fprintf(&b, "\t_ algo.Verifier = (%s)(nil)\n", inst)
	}
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "// flashSlot holds the single algorithm instance between Init and UnInit.\n")
	fmt.Fprintf(&b, "var flashSlot algo.Slot[%s]\n", inst)

	entry := func(name, params, body string) {
		fmt.Fprintf(&b, "\n//go:export %s %s\n", name, name)
		fmt.Fprintf(&b, "//go:section .entry\n")
		fmt.Fprintf(&b, "func %s(%s) uint32 {\n", name, params)
		if m.TrapsOnPanic() {
			fmt.Fprintf(&b, "\tdefer algo.TrapOnPanic()\n")
		}
		fmt.Fprintf(&b, "\treturn %s\n}\n", body)
	}

	entry("Init", "addr uint32, clock uint32, function uint32",
		fmt.Sprintf("flashSlot.Init(addr, clock, function, %s)", m.Constructor))
	entry("UnInit", "",
		"flashSlot.UnInit()")
	entry("EraseSector", "addr uint32",
		"flashSlot.EraseSector(addr)")
	entry("ProgramPage", "addr uint32, size uint32, data *byte",
		"flashSlot.ProgramPage(addr, algo.BytesAt(data, size))")
	if m.Features.EraseChip {
		entry("EraseChip", "",
			"flashSlot.EraseChip()")
	}
	if m.Features.Verify {
		entry("Verify", "addr uint32, size uint32, data *byte",
			"flashSlot.Verify(addr, size, algo.BytesAt(data, size))")
	}

	return format(m.Name+"_entry.go", []byte(b.String()))
}
