// Package mm2rom loads the two immutable ROM images the MM2 firmware
// expects to find next to the binary: the program ROM and the opening
// book ROM. Both are read once at construction and never touched again.
package mm2rom

import (
	"fmt"
	"os"
)

// Sizes the firmware's ROM images must be, exactly.
const (
	ProgramSize = 0x8000 // 32768 bytes
	BookSize    = 0x4000 // 16384 bytes
)

// Default file names, read from the current working directory.
const (
	DefaultProgramPath = "MM2.rom"
	DefaultBookPath    = "hg240.rom"
)

// A LoadError reports that a ROM image is missing or the wrong size.
// Per the error handling design, this is fatal at startup.
type LoadError struct {
	Path     string
	Want     int
	Got      int
	Underlying error
}

func (e *LoadError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("could not read ROM %q: %v", e.Path, e.Underlying)
	}
	return fmt.Sprintf("ROM %q has wrong size: want %d bytes, got %d", e.Path, e.Want, e.Got)
}

func (e *LoadError) Unwrap() error { return e.Underlying }

// Images holds the two loaded, read-only ROM blobs.
type Images struct {
	Program [ProgramSize]byte
	Book    [BookSize]byte
}

// Load reads the program and book ROM from the given paths into a new
// Images value. Both files are opened, read in full, and closed before
// Load returns; the emulator retains no file handles afterward.
func Load(programPath, bookPath string) (*Images, error) {
	img := &Images{}
	if err := readExact(programPath, img.Program[:]); err != nil {
		return nil, err
	}
	if err := readExact(bookPath, img.Book[:]); err != nil {
		return nil, err
	}
	return img, nil
}

func readExact(path string, dst []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Want: len(dst), Underlying: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &LoadError{Path: path, Want: len(dst), Underlying: err}
	}
	if info.Size() != int64(len(dst)) {
		return &LoadError{Path: path, Want: len(dst), Got: int(info.Size())}
	}

	n, err := f.ReadAt(dst, 0)
	if err != nil {
		return &LoadError{Path: path, Want: len(dst), Underlying: err}
	}
	if n != len(dst) {
		return &LoadError{Path: path, Want: len(dst), Got: n}
	}
	return nil
}
