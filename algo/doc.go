// Package algo is the runtime half of a CMSIS-Pack flash algorithm: the
// capability contract an MCU flash driver implements, the single-instance
// slot that carries entry-point semantics, and the fault trap.
//
// A host debugger loads the built image into target RAM and calls the
// exported entry symbols Init, UnInit, EraseSector, ProgramPage and,
// when enabled, EraseChip and Verify. Each entry returns 0 on success,
// 1 when no instance is initialized, and otherwise the algorithm's own
// non-zero error code.
//
// Authors implement Algorithm (plus the optional ChipEraser, Verifier and
// Deiniter capabilities) for their flash controller and describe the device
// in a manifest; the flashalgo generate command emits the binding that wires
// the type into a package-level Slot and exports the entry symbols.
package algo
