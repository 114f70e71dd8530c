package descriptor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"omibyte.io/flashalgo/algo"
)

// Field widths and fixed values of the FlashDevice record. Hosts parse the
// record with C struct layout, little-endian.
const (
	NameWidth = 128

	// deviceTypeOnChip is the conventional dev_type for internal flash.
	deviceTypeOnChip = 5

	// DefaultProgramTimeout and DefaultEraseTimeout are the worst-case
	// durations, in milliseconds, hosts use to decide when to force-abort.
	DefaultProgramTimeout = 1000
	DefaultEraseTimeout   = 2000

	// DeviceHeaderSize is the fixed portion of the encoded record, up to
	// the start of the sector list. The three pad bytes after the empty
	// byte keep the timeout fields 4-aligned, as C layout does.
	DeviceHeaderSize = 160

	// SectorEntrySize is the encoded size of one sector list entry.
	SectorEntrySize = 8
)

var ErrNoSectors = errors.New("descriptor: sector list is empty")

// Sector is one entry of the FlashDevice sector map: a run of equally sized
// erase units starting at Addr, expressed relative to the device base.
type Sector struct {
	Size uint32
	Addr uint32
}

// SectorSentinel terminates the encoded sector list.
var SectorSentinel = Sector{Size: 0xFFFF_FFFF, Addr: 0xFFFF_FFFF}

// Device describes the flash device to the host. It encodes to the
// FlashDevice record the host reads out of the DeviceData section of the
// image file.
type Device struct {
	// Name of the target device, at most NameWidth ASCII bytes.
	Name string

	// BaseAddr is the default device start address.
	BaseAddr uint32

	// Size of the device in bytes.
	Size uint32

	// PageSize is the programming page size.
	PageSize uint32

	// Empty is the content of erased memory, typically 0xFF.
	Empty byte

	// ProgramTimeout and EraseTimeout are in milliseconds. Zero selects
	// the defaults.
	ProgramTimeout uint32
	EraseTimeout   uint32

	// Sectors is the erase sector map. Must not be empty; the encoder
	// appends the sentinel itself.
	Sectors []Sector
}

// deviceHeader mirrors the fixed part of the C record. The blank field is
// the alignment padding after the empty byte; encoding/binary writes it as
// zeros.
type deviceHeader struct {
	Vers           uint16
	DevName        [NameWidth]byte
	DevType        uint16
	DevAddr        uint32
	DeviceSize     uint32
	PageSize       uint32
	Reserved       uint32
	Empty          uint8
	_              [3]byte
	ProgramTimeout uint32
	EraseTimeout   uint32
}

// EncodedSize returns the byte length Encode will produce, sentinel
// included.
func (d *Device) EncodedSize() int {
	return DeviceHeaderSize + (len(d.Sectors)+1)*SectorEntrySize
}

// Encode produces the exact little-endian DeviceData image: fixed header,
// authored sector entries, terminating sentinel.
func (d *Device) Encode() ([]byte, error) {
	if len(d.Sectors) == 0 {
		return nil, ErrNoSectors
	}
	name, err := algo.AssignName(d.Name, NameWidth)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}

	hdr := deviceHeader{
		Vers:           0,
		DevType:        deviceTypeOnChip,
		DevAddr:        d.BaseAddr,
		DeviceSize:     d.Size,
		PageSize:       d.PageSize,
		Reserved:       0,
		Empty:          d.Empty,
		ProgramTimeout: d.ProgramTimeout,
		EraseTimeout:   d.EraseTimeout,
	}
	copy(hdr.DevName[:], name)
	if hdr.ProgramTimeout == 0 {
		hdr.ProgramTimeout = DefaultProgramTimeout
	}
	if hdr.EraseTimeout == 0 {
		hdr.EraseTimeout = DefaultEraseTimeout
	}

	buf := bytes.NewBuffer(make([]byte, 0, d.EncodedSize()))
	if err := binary.Write(buf, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	for _, s := range d.Sectors {
		if err := binary.Write(buf, binary.LittleEndian, s); err != nil {
			return nil, err
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, SectorSentinel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
