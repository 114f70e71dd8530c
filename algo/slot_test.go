package algo

import (
	"errors"
	"fmt"
	"testing"
)

// mockAlgo records calls and fails on demand. The events log makes the
// construct/destroy ordering observable across re-init.
type mockAlgo struct {
	events *[]string

	eraseErr    error
	programErr  error
	eraseAllErr error
	verifyErr   error

	lastAddr    uint32
	lastData    []byte
	verifyCalls int
	verifyData  []byte
}

func (m *mockAlgo) EraseSector(addr uint32) error {
	m.lastAddr = addr
	return m.eraseErr
}

func (m *mockAlgo) ProgramPage(addr uint32, data []byte) error {
	m.lastAddr = addr
	m.lastData = append([]byte(nil), data...)
	return m.programErr
}

func (m *mockAlgo) EraseAll() error {
	return m.eraseAllErr
}

func (m *mockAlgo) Verify(addr, size uint32, data []byte) error {
	m.verifyCalls++
	m.verifyData = data
	return m.verifyErr
}

func (m *mockAlgo) Deinit() {
	*m.events = append(*m.events, "destroy")
}

func mockCtor(events *[]string, ctorErr error) Constructor[*mockAlgo] {
	return func(addr, clock uint32, fn Function) (*mockAlgo, error) {
		if ctorErr != nil {
			return nil, ctorErr
		}
		*events = append(*events, fmt.Sprintf("construct(%s)", fn))
		return &mockAlgo{events: events}, nil
	}
}

func TestInitUnInitRoundTrip(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	if got := s.Init(0x08000000, 0, 2, mockCtor(&events, nil)); got != StatusSuccess {
		t.Fatalf("Init() = %d, want 0", got)
	}
	if !s.Initialized() {
		t.Fatal("slot not initialized after successful Init")
	}
	if got := s.UnInit(); got != StatusSuccess {
		t.Fatalf("UnInit() = %d, want 0", got)
	}
	if got := s.UnInit(); got != StatusNotInitialized {
		t.Fatalf("second UnInit() = %d, want %d", got, StatusNotInitialized)
	}
}

func TestPreInitGuard(t *testing.T) {
	var s Slot[*mockAlgo]

	testCases := []struct {
		desc string
		call func() uint32
	}{
		{"EraseSector", func() uint32 { return s.EraseSector(0x08000000) }},
		{"ProgramPage", func() uint32 { return s.ProgramPage(0, nil) }},
		{"EraseChip", func() uint32 { return s.EraseChip() }},
		{"Verify", func() uint32 { return s.Verify(0, 0, nil) }},
		{"UnInit", func() uint32 { return s.UnInit() }},
	}
	for _, tc := range testCases {
		if got := tc.call(); got != StatusNotInitialized {
			t.Errorf("Test %q: got %d before Init, want %d", tc.desc, got, StatusNotInitialized)
		}
	}
}

func TestReInitDestroysPreviousInstance(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]
	ctor := mockCtor(&events, nil)

	if got := s.Init(0, 0, 1, ctor); got != StatusSuccess {
		t.Fatalf("first Init() = %d, want 0", got)
	}
	if got := s.Init(0, 0, 2, ctor); got != StatusSuccess {
		t.Fatalf("second Init() = %d, want 0", got)
	}

	want := []string{"construct(erase)", "destroy", "construct(program)"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestConstructorErrorPassthrough(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	if got := s.Init(0, 0, 1, mockCtor(&events, ErrorCode(0x70D0))); got != 0x70D0 {
		t.Fatalf("Init() = 0x%X, want 0x70D0", got)
	}
	if s.Initialized() {
		t.Fatal("slot marked initialized after failed constructor")
	}
	// Failure must not leak the constructor's code into later entries.
	if got := s.EraseSector(0x08000000); got != StatusNotInitialized {
		t.Fatalf("EraseSector() after failed Init = %d, want %d", got, StatusNotInitialized)
	}
}

func TestConstructorPlainErrorMapsToUnspecified(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	got := s.Init(0, 0, 1, mockCtor(&events, errors.New("controller locked")))
	if got != uint32(ErrorUnspecified) {
		t.Fatalf("Init() = 0x%X, want 0x%X", got, uint32(ErrorUnspecified))
	}
}

func TestUnknownFunctionSelectorFaults(t *testing.T) {
	for _, fn := range []uint32{0, 4, 0xFFFFFFFF} {
		fn := fn
		t.Run(fmt.Sprintf("selector_%d", fn), func(t *testing.T) {
			var events []string
			var s Slot[*mockAlgo]
			defer func() {
				if r := recover(); r != ErrFault {
					t.Fatalf("recovered %v, want ErrFault", r)
				}
			}()
			s.Init(0, 0, fn, mockCtor(&events, nil))
			t.Fatal("Init returned for unknown function selector")
		})
	}
}

func TestMinimalProgramSession(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	if got := s.Init(0x08000000, 0, 2, mockCtor(&events, nil)); got != 0 {
		t.Fatalf("Init() = %d, want 0", got)
	}
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if got := s.ProgramPage(0x08000000, data); got != 0 {
		t.Fatalf("ProgramPage() = %d, want 0", got)
	}
	if s.inst.lastAddr != 0x08000000 || len(s.inst.lastData) != 4 {
		t.Fatalf("ProgramPage dispatched addr=0x%X data=%v", s.inst.lastAddr, s.inst.lastData)
	}
	if got := s.UnInit(); got != 0 {
		t.Fatalf("UnInit() = %d, want 0", got)
	}
}

func TestOperationErrorPassthrough(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	if got := s.Init(0, 0, 1, mockCtor(&events, nil)); got != 0 {
		t.Fatalf("Init() = %d, want 0", got)
	}
	s.inst.eraseErr = ErrorCode(0xBEEF)
	if got := s.EraseSector(0); got != 0xBEEF {
		t.Fatalf("EraseSector() = 0x%X, want 0xBEEF", got)
	}
	s.inst.eraseAllErr = ErrorCode(0x70D0)
	if got := s.EraseChip(); got != 0x70D0 {
		t.Fatalf("EraseChip() = 0x%X, want 0x70D0", got)
	}
}

func TestVerifyWithoutBuffer(t *testing.T) {
	var events []string
	var s Slot[*mockAlgo]

	if got := s.Init(0x08000000, 0, 3, mockCtor(&events, nil)); got != 0 {
		t.Fatalf("Init() = %d, want 0", got)
	}
	if got := s.Verify(0x08000000, 16, nil); got != 0 {
		t.Fatalf("Verify() = %d, want 0", got)
	}
	if s.inst.verifyCalls != 1 {
		t.Fatalf("verify called %d times, want 1", s.inst.verifyCalls)
	}
	if s.inst.verifyData != nil {
		t.Fatalf("verify received %v, want nil for a null host buffer", s.inst.verifyData)
	}
}

// minimalAlgo implements only the mandatory capabilities.
type minimalAlgo struct{}

func (minimalAlgo) EraseSector(addr uint32) error           { return nil }
func (minimalAlgo) ProgramPage(addr uint32, d []byte) error { return nil }

func TestMissingCapabilityFaults(t *testing.T) {
	ctor := func(addr, clock uint32, fn Function) (minimalAlgo, error) {
		return minimalAlgo{}, nil
	}

	testCases := []struct {
		desc string
		call func(s *Slot[minimalAlgo]) uint32
	}{
		{"EraseChip", func(s *Slot[minimalAlgo]) uint32 { return s.EraseChip() }},
		{"Verify", func(s *Slot[minimalAlgo]) uint32 { return s.Verify(0, 0, nil) }},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			var s Slot[minimalAlgo]
			if got := s.Init(0, 0, 1, ctor); got != 0 {
				t.Fatalf("Init() = %d, want 0", got)
			}
			defer func() {
				if r := recover(); r != ErrFault {
					t.Fatalf("recovered %v, want ErrFault", r)
				}
			}()
			tc.call(&s)
			t.Fatalf("%s returned without the capability", tc.desc)
		})
	}
}
