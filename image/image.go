// Package image reads the descriptor records back out of a built flash
// algorithm image. Hosts locate the DeviceData and SelfTestInfo sections in
// the image file and parse them without ever executing target code; this
// package does the same for inspection tooling.
package image

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"

	"omibyte.io/flashalgo/descriptor"
)

// Section names the linker script places the records in.
const (
	DeviceDataSection   = "DeviceData"
	SelfTestInfoSection = "SelfTestInfo"
)

var ErrNoDeviceData = errors.New("image: no DeviceData section")

// Info holds the decoded descriptors of one image. SelfTest is nil when the
// image carries no SelfTestInfo section (images built by other toolchains
// usually do not).
type Info struct {
	Device   *descriptor.Device
	SelfTest *descriptor.SelfTest
}

// Open reads the descriptors from an ELF image file.
func Open(path string) (*Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := Read(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Read decodes the descriptors from an in-memory ELF image.
func Read(img []byte) (*Info, error) {
	f, err := elf.NewFile(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	defer f.Close()

	devSec := f.Section(DeviceDataSection)
	if devSec == nil {
		return nil, ErrNoDeviceData
	}
	devData, err := devSec.Data()
	if err != nil {
		return nil, fmt.Errorf("image: %s: %w", DeviceDataSection, err)
	}
	dev, err := descriptor.ParseDevice(devData)
	if err != nil {
		return nil, err
	}

	info := &Info{Device: dev}
	if stSec := f.Section(SelfTestInfoSection); stSec != nil {
		stData, err := stSec.Data()
		if err != nil {
			return nil, fmt.Errorf("image: %s: %w", SelfTestInfoSection, err)
		}
		st, err := descriptor.ParseSelfTest(stData)
		if err != nil {
			return nil, err
		}
		info.SelfTest = st
	}
	return info, nil
}
