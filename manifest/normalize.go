package manifest

import (
	"fmt"

	"omibyte.io/flashalgo/descriptor"
	"omibyte.io/flashalgo/targets"
)

// Normalize merges chip-table defaults and fills the remaining defaults.
// Explicitly set fields always win over the chip table.
func (m *Manifest) Normalize() error {
	if m.Chip != "" {
		chip, err := targets.FindByChip(m.Chip)
		if err != nil {
			return fmt.Errorf("manifest: chip %q: %w", m.Chip, err)
		}
		if m.Name == "" {
			m.Name = chip.Chip
		}
		if m.FlashAddress == 0 {
			m.FlashAddress = HexUint32(chip.FlashAddress)
		}
		if m.FlashSize == 0 {
			m.FlashSize = HexUint32(chip.FlashSize)
		}
		if m.PageSize == 0 {
			m.PageSize = HexUint32(chip.PageSize)
		}
		if m.EmptyValue == nil {
			v := HexUint32(chip.EmptyValue)
			m.EmptyValue = &v
		}
		if m.RAMStartAddress == 0 && m.RAMEndAddress == 0 {
			m.RAMStartAddress = HexUint32(chip.RAMStartAddress)
			m.RAMEndAddress = HexUint32(chip.RAMEndAddress)
		}
		if len(m.Sectors) == 0 {
			for _, s := range chip.Sectors {
				m.Sectors = append(m.Sectors, SectorConfig{
					Size:    HexUint32(s.Size),
					Address: HexUint32(s.Address),
				})
			}
		}
	}

	if m.Package == "" {
		m.Package = "main"
	}
	if m.Type == "" {
		m.Type = "Algorithm"
	}
	if m.Constructor == "" {
		m.Constructor = "New" + m.Type
	}
	if m.ProgramTimeoutMs == 0 {
		m.ProgramTimeoutMs = descriptor.DefaultProgramTimeout
	}
	if m.EraseTimeoutMs == 0 {
		m.EraseTimeoutMs = descriptor.DefaultEraseTimeout
	}
	return nil
}
