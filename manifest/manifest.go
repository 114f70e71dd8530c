package manifest

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"omibyte.io/flashalgo/descriptor"
)

// Manifest is the authored description of one flash algorithm build: the
// target device geometry, the Go type implementing the contract, and the
// feature toggles that decide which optional entry symbols exist in the
// image. It fills the same role the Rust algorithm! macro block does for
// probe-rs flash algorithms.
type Manifest struct {
	// Name of the target device, used for dev_name and generated file names.
	Name string `yaml:"name"`

	// Package, Type and Constructor identify the author's code the
	// generated binding wires up. Package defaults to main, Type to
	// Algorithm, Constructor to New<Type>.
	Package     string `yaml:"package"`
	Type        string `yaml:"type"`
	Constructor string `yaml:"constructor"`

	// Chip optionally names an entry of the built-in target table; its
	// geometry fills any field left unset below.
	Chip string `yaml:"chip"`

	FlashAddress HexUint32 `yaml:"flashAddress"`
	FlashSize    HexUint32 `yaml:"flashSize"`
	PageSize     HexUint32 `yaml:"pageSize"`

	// EmptyValue is the erased-byte value. Unset means 0xFF.
	EmptyValue *HexUint32 `yaml:"emptyValue"`

	ProgramTimeoutMs uint32 `yaml:"programTimeoutMs"`
	EraseTimeoutMs   uint32 `yaml:"eraseTimeoutMs"`

	// RAM window the host may clobber while running self-tests.
	RAMStartAddress HexUint32 `yaml:"ramStartAddress"`
	RAMEndAddress   HexUint32 `yaml:"ramEndAddress"`

	Sectors   []SectorConfig   `yaml:"sectors"`
	SelfTests []SelfTestConfig `yaml:"selfTests"`

	Features Features `yaml:"features"`
}

type SectorConfig struct {
	Size    HexUint32 `yaml:"size"`
	Address HexUint32 `yaml:"address"`
}

type SelfTestConfig struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

// Features are the build toggles. EraseChip and Verify control whether the
// corresponding entry symbols are generated at all; PanicHandler (default
// on) makes every generated entry route panics into the fault trap.
type Features struct {
	EraseChip    bool  `yaml:"eraseChip"`
	Verify       bool  `yaml:"verify"`
	PanicHandler *bool `yaml:"panicHandler"`
}

// HexUint32 accepts either a YAML integer or a string such as "0x08000000".
type HexUint32 uint32

func (h *HexUint32) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("manifest: line %d: expected a scalar value", value.Line)
	}
	v, err := strconv.ParseUint(value.Value, 0, 32)
	if err != nil {
		return fmt.Errorf("manifest: %q is not a 32-bit value: %w", value.Value, err)
	}
	*h = HexUint32(v)
	return nil
}

// Load reads, normalizes and validates a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest, merges chip-table defaults, and validates the
// result.
func Parse(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := m.Normalize(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Empty returns the erased-byte value, defaulting to 0xFF.
func (m *Manifest) Empty() byte {
	if m.EmptyValue == nil {
		return 0xFF
	}
	return byte(*m.EmptyValue)
}

// TrapsOnPanic reports whether the panicHandler feature is enabled.
func (m *Manifest) TrapsOnPanic() bool {
	return m.Features.PanicHandler == nil || *m.Features.PanicHandler
}

// Device builds the descriptor record described by the manifest.
func (m *Manifest) Device() *descriptor.Device {
	d := &descriptor.Device{
		Name:           m.Name,
		BaseAddr:       uint32(m.FlashAddress),
		Size:           uint32(m.FlashSize),
		PageSize:       uint32(m.PageSize),
		Empty:          m.Empty(),
		ProgramTimeout: m.ProgramTimeoutMs,
		EraseTimeout:   m.EraseTimeoutMs,
	}
	for _, s := range m.Sectors {
		d.Sectors = append(d.Sectors, descriptor.Sector{Size: uint32(s.Size), Addr: uint32(s.Address)})
	}
	return d
}

// SelfTest builds the self-test record described by the manifest.
func (m *Manifest) SelfTest() *descriptor.SelfTest {
	st := &descriptor.SelfTest{
		RAMStart: uint32(m.RAMStartAddress),
		RAMEnd:   uint32(m.RAMEndAddress),
	}
	for _, t := range m.SelfTests {
		st.Tests = append(st.Tests, descriptor.SelfTestItem{ID: t.ID, Name: t.Name})
	}
	return st
}
