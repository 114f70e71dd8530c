package algo

import "unsafe"

// BytesAt forms a byte slice over the host-supplied buffer [data, data+size).
// The generated entry points use it to marshal the raw ProgramPage and
// Verify pointers. A nil pointer yields a nil slice regardless of size; for
// Verify that conveys "no compare buffer".
func BytesAt(data *byte, size uint32) []byte {
	if data == nil {
		return nil
	}
	return unsafe.Slice(data, size)
}
