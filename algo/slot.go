package algo

// Slot holds zero or one live algorithm instance. The generated binding
// declares a single package-level Slot per image; the host guarantees
// strictly serial entry calls, so no locking is present.
//
// The zero value is an empty, usable slot.
type Slot[T Algorithm] struct {
	initialized bool
	inst        T
}

// Init runs the session constructor and stores the instance. If the slot is
// already occupied the previous instance is torn down first. An unknown
// function selector is a host contract violation and faults instead of
// returning. A constructor failure surfaces its code and leaves the slot
// uninitialized.
func (s *Slot[T]) Init(addr, clock, function uint32, ctor Constructor[T]) uint32 {
	if s.initialized {
		s.UnInit()
	}

	fn := Function(function)
	switch fn {
	case FunctionErase, FunctionProgram, FunctionVerify:
	default:
		Fault()
	}

	inst, err := ctor(addr, clock, fn)
	if err != nil {
		return CodeOf(err)
	}
	s.inst = inst
	s.initialized = true
	return StatusSuccess
}

// UnInit tears down the current instance. Returns StatusNotInitialized when
// the slot is already empty, which makes it idempotent.
func (s *Slot[T]) UnInit() uint32 {
	if !s.initialized {
		return StatusNotInitialized
	}
	if d, ok := any(s.inst).(Deiniter); ok {
		d.Deinit()
	}
	var zero T
	s.inst = zero
	s.initialized = false
	return StatusSuccess
}

// EraseSector erases the sector starting at addr.
func (s *Slot[T]) EraseSector(addr uint32) uint32 {
	if !s.initialized {
		return StatusNotInitialized
	}
	return status(s.inst.EraseSector(addr))
}

// ProgramPage writes data at addr.
func (s *Slot[T]) ProgramPage(addr uint32, data []byte) uint32 {
	if !s.initialized {
		return StatusNotInitialized
	}
	return status(s.inst.ProgramPage(addr, data))
}

// EraseChip erases the whole device. The bound type must implement
// ChipEraser; the generator only emits the EraseChip entry point after
// asserting that, so a miss here means the host called a symbol this image
// never exported.
func (s *Slot[T]) EraseChip() uint32 {
	if !s.initialized {
		return StatusNotInitialized
	}
	ce, ok := any(s.inst).(ChipEraser)
	if !ok {
		Fault()
	}
	return status(ce.EraseAll())
}

// Verify checks size bytes at addr. data is nil when the host passed a null
// buffer pointer.
func (s *Slot[T]) Verify(addr, size uint32, data []byte) uint32 {
	if !s.initialized {
		return StatusNotInitialized
	}
	v, ok := any(s.inst).(Verifier)
	if !ok {
		Fault()
	}
	return status(v.Verify(addr, size, data))
}

// Initialized reports whether the slot currently holds an instance.
func (s *Slot[T]) Initialized() bool {
	return s.initialized
}

func status(err error) uint32 {
	if err != nil {
		return CodeOf(err)
	}
	return StatusSuccess
}
