package gen

import (
	"fmt"
	"strings"

	"omibyte.io/flashalgo/manifest"
)

// DescriptorSource renders the statically encoded descriptor records as
// section-placed byte arrays. The host never executes these; it reads them
// straight out of the image file, so the bytes must match the wire layout
// exactly and are pre-encoded here rather than built at runtime.
func DescriptorSource(m *manifest.Manifest) ([]byte, error) {
	dev, err := m.Device().Encode()
	if err != nil {
		return nil, err
	}
	st, err := m.SelfTest().Encode()
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by flashalgo generate (target %s); DO NOT EDIT.\n\n", m.Name)
	fmt.Fprintf(&b, "package %s\n\n", m.Package)

	fmt.Fprintf(&b, "// FlashDevice describes the %s flash geometry to the host.\n", m.Name)
	fmt.Fprintf(&b, "//\n//go:section DeviceData\n")
	writeByteArray(&b, "FlashDevice", dev)

	fmt.Fprintf(&b, "\n// SelfTestMetadata lists the on-device self-tests and their RAM window.\n")
	fmt.Fprintf(&b, "//\n//go:section SelfTestInfo\n")
	writeByteArray(&b, "SelfTestMetadata", st)

	return format(m.Name+"_flashdev.go", []byte(b.String()))
}

func writeByteArray(b *strings.Builder, name string, data []byte) {
	fmt.Fprintf(b, "var %s = [%d]byte{", name, len(data))
	for i, v := range data {
		if i%12 == 0 {
			b.WriteString("\n\t")
		} else {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "0x%02X,", v)
	}
	b.WriteString("\n}\n")
}
