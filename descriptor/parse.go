package descriptor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Host-side decoding of the records, used when reading the DeviceData and
// SelfTestInfo sections back out of a built image.

var (
	ErrTruncated  = errors.New("descriptor: truncated record")
	ErrNoSentinel = errors.New("descriptor: list is not sentinel-terminated")
	ErrBadMagic   = errors.New("descriptor: self-test magic mismatch")
)

// ParseDevice decodes a FlashDevice record. The sector list must carry the
// terminating sentinel; the sentinel itself is not returned.
func ParseDevice(b []byte) (*Device, error) {
	if len(b) < DeviceHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(b), DeviceHeaderSize)
	}

	var hdr deviceHeader
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	d := &Device{
		Name:           cString(hdr.DevName[:]),
		BaseAddr:       hdr.DevAddr,
		Size:           hdr.DeviceSize,
		PageSize:       hdr.PageSize,
		Empty:          hdr.Empty,
		ProgramTimeout: hdr.ProgramTimeout,
		EraseTimeout:   hdr.EraseTimeout,
	}

	rest := b[DeviceHeaderSize:]
	for {
		if len(rest) < SectorEntrySize {
			return nil, ErrNoSentinel
		}
		s := Sector{
			Size: binary.LittleEndian.Uint32(rest[0:4]),
			Addr: binary.LittleEndian.Uint32(rest[4:8]),
		}
		rest = rest[SectorEntrySize:]
		if s == SectorSentinel {
			break
		}
		d.Sectors = append(d.Sectors, s)
	}
	return d, nil
}

// ParseSelfTest decodes a SelfTestInfo record, validating the magic. The
// item list must carry the sentinel; it is not returned. The authored count
// field must match the number of items before the sentinel.
func ParseSelfTest(b []byte) (*SelfTest, error) {
	if len(b) < SelfTestHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(b), SelfTestHeaderSize)
	}
	if magic := binary.LittleEndian.Uint32(b[0:4]); magic != SelfTestMagic {
		return nil, fmt.Errorf("%w: got 0x%08X", ErrBadMagic, magic)
	}

	s := &SelfTest{
		RAMStart: binary.LittleEndian.Uint32(b[4:8]),
		RAMEnd:   binary.LittleEndian.Uint32(b[8:12]),
	}
	count := binary.LittleEndian.Uint32(b[12:16])

	rest := b[SelfTestHeaderSize:]
	for {
		if len(rest) < SelfTestItemSize {
			return nil, ErrNoSentinel
		}
		id := binary.LittleEndian.Uint32(rest[0:4])
		name := rest[4:SelfTestItemSize]
		rest = rest[SelfTestItemSize:]
		if id == 0xFFFF_FFFF {
			break
		}
		s.Tests = append(s.Tests, SelfTestItem{ID: id, Name: cString(name)})
	}
	if uint32(len(s.Tests)) != count {
		return nil, fmt.Errorf("descriptor: test count field is %d, record holds %d items", count, len(s.Tests))
	}
	return s, nil
}

// cString cuts a zero-padded fixed-width name at the first NUL.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
