package algo

import "fmt"

// AssignName pads an ASCII name into a fixed-width, zero-padded byte array
// of the given width. The device descriptor uses width 128, self-test items
// width 32. Over-long or non-ASCII names are rejected; the generator runs
// this at generation time, so a bad name fails the build instead of
// producing a corrupt descriptor.
func AssignName(name string, width int) ([]byte, error) {
	if len(name) > width {
		return nil, fmt.Errorf("name %q is %d bytes, limit is %d", name, len(name), width)
	}
	for i := 0; i < len(name); i++ {
		if name[i] == 0 || name[i] > 0x7F {
			return nil, fmt.Errorf("name %q contains non-ASCII byte 0x%02X at index %d", name, name[i], i)
		}
	}
	out := make([]byte, width)
	copy(out, name)
	return out, nil
}
