package descriptor

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"omibyte.io/flashalgo/algo"
)

// SelfTest layout constants. Unlike FlashDevice, this record and its items
// are byte-packed.
const (
	// SelfTestMagic reads "Soul" when the record is dumped as ASCII
	// (little-endian on disk: 6C 75 6F 53).
	SelfTestMagic uint32 = 0x536F_756C

	TestNameWidth = 32

	// SelfTestHeaderSize is magic + ram window + count.
	SelfTestHeaderSize = 16

	// SelfTestItemSize is the packed size of one item.
	SelfTestItemSize = 36
)

// SelfTestItem names one on-device self-test the host may request.
type SelfTestItem struct {
	ID   uint32
	Name string
}

// SelfTest describes the image's self-tests and the RAM window the host may
// clobber while running them. It encodes to the SelfTestInfo section.
type SelfTest struct {
	RAMStart uint32
	RAMEnd   uint32
	Tests    []SelfTestItem
}

// EncodedSize returns the byte length Encode will produce, sentinel
// included.
func (s *SelfTest) EncodedSize() int {
	return SelfTestHeaderSize + (len(s.Tests)+1)*SelfTestItemSize
}

// Encode produces the packed little-endian SelfTestInfo image. The count
// field holds the authored test count; the sentinel item is excluded from
// it but always present.
func (s *SelfTest) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, s.EncodedSize()))

	hdr := struct {
		Magic    uint32
		RAMStart uint32
		RAMEnd   uint32
		TestCnt  uint32
	}{
		Magic:    SelfTestMagic,
		RAMStart: s.RAMStart,
		RAMEnd:   s.RAMEnd,
		TestCnt:  uint32(len(s.Tests)),
	}
	if err := binary.Write(buf, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	var item struct {
		ID   uint32
		Name [TestNameWidth]byte
	}
	for _, t := range s.Tests {
		name, err := algo.AssignName(t.Name, TestNameWidth)
		if err != nil {
			return nil, fmt.Errorf("descriptor: self-test %d: %w", t.ID, err)
		}
		item.ID = t.ID
		copy(item.Name[:], name)
		if err := binary.Write(buf, binary.LittleEndian, &item); err != nil {
			return nil, err
		}
	}

	// Sentinel: id all ones, name all 0xFF.
	item.ID = 0xFFFF_FFFF
	for i := range item.Name {
		item.Name[i] = 0xFF
	}
	if err := binary.Write(buf, binary.LittleEndian, &item); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
