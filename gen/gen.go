// Package gen emits the per-build binding for a flash algorithm: the entry
// point shims that wire the author's type into an algo.Slot, and the
// statically encoded FlashDevice and SelfTestInfo section data. It is the
// code-generation counterpart of the Rust algorithm! macro, driven by a
// manifest instead of macro input.
package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"omibyte.io/flashalgo/manifest"
)

var ErrNoManifest = errors.New("gen: no manifest provided")

type Options struct {
	Manifest *manifest.Manifest

	// OutDir receives the generated files. Created if missing.
	OutDir string

	// WriteBlobs additionally emits the raw DeviceData and SelfTestInfo
	// section images as .bin files, for hosts that sideload descriptors.
	WriteBlobs bool
}

// Generate writes the binding sources (and optionally the descriptor blobs)
// for the given manifest. The manifest must already be normalized and
// validated; manifest.Load and manifest.Parse guarantee that.
func Generate(opts Options) error {
	m := opts.Manifest
	if m == nil {
		return ErrNoManifest
	}
	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return err
	}

	entry, err := EntrySource(m)
	if err != nil {
		return err
	}
	device, err := DescriptorSource(m)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(opts.OutDir, m.Name+"_entry.go"), entry, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(opts.OutDir, m.Name+"_flashdev.go"), device, 0o644); err != nil {
		return err
	}

	if opts.WriteBlobs {
		if err := WriteDescriptorBlobs(m, opts.OutDir); err != nil {
			return err
		}
	}
	return nil
}

// WriteDescriptorBlobs emits the encoded section contents as raw binaries.
func WriteDescriptorBlobs(m *manifest.Manifest, outDir string) error {
	dev, err := m.Device().Encode()
	if err != nil {
		return err
	}
	st, err := m.SelfTest().Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, m.Name+"_devicedata.bin"), dev, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, m.Name+"_selftestinfo.bin"), st, 0o644)
}

// format runs the generated source through the canonical formatter,
// resolving the import block along the way. A formatting failure means the
// generator emitted bad syntax, so the raw source is included for debugging.
func format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, nil)
	if err != nil {
		return nil, fmt.Errorf("gen: formatting %s: %w\nsource:\n%s", filename, err, src)
	}
	return out, nil
}
