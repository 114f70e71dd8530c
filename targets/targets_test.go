package targets

import (
	"errors"
	"testing"
)

func TestFindByChip(t *testing.T) {
	testCases := []struct {
		desc     string
		name     string
		wantChip string
		wantErr  error
	}{
		{"canonical name", "stm32wle5", "stm32wle5", nil},
		{"case-insensitive", "STM32WLE5", "stm32wle5", nil},
		{"alias", "bluepill", "stm32f103c8", nil},
		{"alias of another chip", "pico", "rp2040", nil},
		{"vendor-cased alias", "nrf52840_xxaa", "nrf52840", nil},
		{"query cased against cased alias", "NRF52840_XXAA", "nrf52840", nil},
		{"unknown", "z80", "", ErrUnknownChip},
	}
	for _, tc := range testCases {
		info, err := FindByChip(tc.name)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("Test %q: FindByChip(%q) error = %v, want %v", tc.desc, tc.name, err, tc.wantErr)
		}
		if err == nil && info.Chip != tc.wantChip {
			t.Errorf("Test %q: FindByChip(%q) = %q, want %q", tc.desc, tc.name, info.Chip, tc.wantChip)
		}
	}
}

// Every table entry must be usable as manifest defaults without further
// validation surprises.
func TestTableSanity(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("embedded target table is empty")
	}

	seen := make(map[string]bool)
	for _, info := range all {
		if seen[info.Chip] {
			t.Errorf("duplicate chip %q", info.Chip)
		}
		seen[info.Chip] = true

		if info.FlashSize == 0 {
			t.Errorf("%s: zero flashSize", info.Chip)
		}
		if info.PageSize == 0 || info.PageSize&(info.PageSize-1) != 0 {
			t.Errorf("%s: pageSize 0x%X is not a power of two", info.Chip, info.PageSize)
		}
		if info.RAMEndAddress <= info.RAMStartAddress {
			t.Errorf("%s: empty RAM window", info.Chip)
		}
		if len(info.Sectors) == 0 {
			t.Errorf("%s: no sectors", info.Chip)
		}
		for i, s := range info.Sectors {
			if uint64(s.Address)+uint64(s.Size) > uint64(info.FlashSize) {
				t.Errorf("%s: sector %d extends past flash end", info.Chip, i)
			}
		}
	}
}
