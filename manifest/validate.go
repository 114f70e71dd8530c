package manifest

import (
	"fmt"
	"go/token"

	"omibyte.io/flashalgo/algo"
	"omibyte.io/flashalgo/descriptor"
)

// Validate checks the manifest after normalization. It does not mutate it.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if _, err := algo.AssignName(m.Name, descriptor.NameWidth); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	for _, ident := range []struct{ field, value string }{
		{"package", m.Package},
		{"type", m.Type},
		{"constructor", m.Constructor},
	} {
		if !token.IsIdentifier(ident.value) {
			return fmt.Errorf("manifest: %s %q is not a valid Go identifier", ident.field, ident.value)
		}
	}

	if m.FlashSize == 0 {
		return fmt.Errorf("manifest: flashSize is required")
	}
	if m.PageSize == 0 || m.PageSize&(m.PageSize-1) != 0 {
		return fmt.Errorf("manifest: pageSize 0x%X must be a non-zero power of two", uint32(m.PageSize))
	}
	if m.PageSize > m.FlashSize {
		return fmt.Errorf("manifest: pageSize 0x%X exceeds flashSize 0x%X", uint32(m.PageSize), uint32(m.FlashSize))
	}
	if m.EmptyValue != nil && *m.EmptyValue > 0xFF {
		return fmt.Errorf("manifest: emptyValue 0x%X does not fit in one byte", uint32(*m.EmptyValue))
	}

	if len(m.Sectors) == 0 {
		return fmt.Errorf("manifest: at least one sector is required")
	}
	prevEnd := uint32(0)
	for i, s := range m.Sectors {
		if s.Size == 0 {
			return fmt.Errorf("manifest: sector %d has zero size", i)
		}
		if uint32(s.Address) < prevEnd && i > 0 {
			return fmt.Errorf("manifest: sector %d at 0x%X overlaps the previous region", i, uint32(s.Address))
		}
		if uint64(s.Address)+uint64(s.Size) > uint64(m.FlashSize) {
			return fmt.Errorf("manifest: sector %d (0x%X+0x%X) extends past flashSize 0x%X",
				i, uint32(s.Address), uint32(s.Size), uint32(m.FlashSize))
		}
		prevEnd = uint32(s.Address) + uint32(s.Size)
	}

	if m.RAMEndAddress < m.RAMStartAddress {
		return fmt.Errorf("manifest: RAM window [0x%X, 0x%X) is inverted",
			uint32(m.RAMStartAddress), uint32(m.RAMEndAddress))
	}

	seen := make(map[uint32]bool, len(m.SelfTests))
	for _, t := range m.SelfTests {
		if t.ID == 0xFFFF_FFFF {
			return fmt.Errorf("manifest: self-test id 0x%X is reserved for the sentinel", t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("manifest: duplicate self-test id %d", t.ID)
		}
		seen[t.ID] = true
		if _, err := algo.AssignName(t.Name, descriptor.TestNameWidth); err != nil {
			return fmt.Errorf("manifest: self-test %d: %w", t.ID, err)
		}
	}
	return nil
}
