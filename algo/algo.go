package algo

import (
	"errors"
	"fmt"
)

// Function selects which kind of work the host is about to perform. The host
// passes it to Init so an implementation can bring up only the hardware the
// session needs.
type Function uint32

const (
	FunctionErase   Function = 1
	FunctionProgram Function = 2
	FunctionVerify  Function = 3
)

func (f Function) String() string {
	switch f {
	case FunctionErase:
		return "erase"
	case FunctionProgram:
		return "program"
	case FunctionVerify:
		return "verify"
	}
	return fmt.Sprintf("unknown(%d)", uint32(f))
}

// Status codes shared with the host. Everything else is algorithm-defined.
const (
	StatusSuccess        uint32 = 0
	StatusNotInitialized uint32 = 1
)

// ErrorCode is a non-zero 32-bit value surfaced verbatim to the host in the
// result register. The zero value is reserved for success and is never
// reported; CodeOf substitutes ErrorUnspecified for it.
type ErrorCode uint32

// ErrorUnspecified is reported for failures that carry no algorithm-defined
// code, including errors that are not an ErrorCode at all.
const ErrorUnspecified ErrorCode = 0xFFFF_FFFF

func (e ErrorCode) Error() string {
	return fmt.Sprintf("flash algorithm error 0x%08X", uint32(e))
}

// CodeOf translates an error returned by an Algorithm into the value placed
// in the host's result register. A wrapped ErrorCode passes through
// unchanged; anything else maps to ErrorUnspecified. The result is always
// non-zero.
func CodeOf(err error) uint32 {
	var code ErrorCode
	if errors.As(err, &code) && code != 0 {
		return uint32(code)
	}
	return uint32(ErrorUnspecified)
}

// Algorithm is the capability contract an MCU flash driver implements. One
// concrete type is bound per image; the generated entry points dispatch to
// it through a Slot.
//
// EraseSector is only called within an erase session, ProgramPage within a
// program session. The addresses handed in are sector bases declared in the
// device descriptor, or page-aligned program addresses, respectively.
type Algorithm interface {
	// EraseSector erases the sector starting at addr.
	EraseSector(addr uint32) error

	// ProgramPage writes data to flash at addr. addr is aligned to the
	// declared page size and len(data) never exceeds it.
	ProgramPage(addr uint32, data []byte) error
}

// ChipEraser is implemented by algorithms that support whole-chip erase.
// The EraseChip entry point is only generated when the manifest enables it.
type ChipEraser interface {
	EraseAll() error
}

// Verifier is implemented by algorithms that support the optional Verify
// entry point. A nil data slice means the host supplied no compare buffer;
// the implementation performs a blank or CRC check per MCU convention.
type Verifier interface {
	Verify(addr, size uint32, data []byte) error
}

// Deiniter is implemented by algorithms that hold hardware state which must
// be released on UnInit or before a superseding Init.
type Deiniter interface {
	Deinit()
}

// Constructor builds the algorithm instance for one session. addr is the
// flash region base the host intends to operate on, clock the programming
// clock in Hertz (0 means device default). A failed constructor must release
// anything it acquired before returning; the slot stays uninitialized.
type Constructor[T Algorithm] func(addr, clock uint32, fn Function) (T, error)
