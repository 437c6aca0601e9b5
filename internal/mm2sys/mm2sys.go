// Package mm2sys is the MM2's memory-mapped I/O fabric: the 16-bit
// address space a 65C02 core sees, multiplexing RAM, the two ROM
// images, the keypad matrix, the sensor bitboard, the LCD latches, and
// the board LED scan behind a single flat read/write surface. It
// implements github.com/jmchacon/6502's memory.Ram interface directly,
// the same way the firmware's own system bus doubled as its MMIO
// fabric.
package mm2sys

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/BierLiebHaber/mephisto-emu/internal/mm2rom"
)

// Log is the package-level bus tracer. Its level is raised to Debug by
// the UCI "Debug" option; at Info it is silent.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
		DisableSorting:   true,
		DisableQuote:     true,
	})
	return l
}

// System is the MM2's address space. A *System satisfies
// github.com/jmchacon/6502/memory.Ram: Read, Write, ReadAddr, PowerOn.
type System struct {
	RAM [0x1000]byte
	Rom mm2rom.Images

	// Bitboard is the sensor matrix: bit f of Bitboard[r] is set iff a
	// piece occupies file f, rank r. Mutated only by the driver.
	Bitboard [8]byte

	// PressedKeys is the keypad matrix, row selected by output-latch
	// bit 7.
	PressedKeys [2][8]bool

	// Outlatch holds the 8 booleans written through 0x1000-0x1007.
	Outlatch [8]bool

	Mux         int
	Display     [4]byte
	lastDisplay [4]byte
	displayPos  int

	BoardLEDs [8]byte
	LEDSquare int // 0-63, A1=0, rank*8+file

	// IRQDone is cleared by the timing harness when it asserts the IRQ
	// line and set back to true by the firmware's acknowledging write
	// to 0x2800.
	IRQDone bool

	// ToneCount is not updated by this package or by the driver, which
	// keeps its own tone-gate (Outlatch[6]) count in Machine.toneCount.
	ToneCount uint64
}

// New builds a System over the given ROM images. RAM, latches, and
// mux all start in their post-PowerOn state; call PowerOn explicitly
// (or let cpu.Init do it) before stepping the CPU.
func New(rom *mm2rom.Images) *System {
	s := &System{Rom: *rom}
	s.PowerOn()
	return s
}

// PowerOn implements memory.Ram. RAM resets to all-0xFF, matching the
// firmware's uninitialized-SRAM behavior; ROMs, being constructed
// once, are untouched.
func (s *System) PowerOn() {
	for i := range s.RAM {
		s.RAM[i] = 0xFF
	}
	s.Bitboard = [8]byte{}
	s.PressedKeys = [2][8]bool{}
	s.Outlatch = [8]bool{}
	s.Mux = 0
	s.Display = [4]byte{}
	s.lastDisplay = [4]byte{}
	s.displayPos = 3
	s.BoardLEDs = [8]byte{}
	s.IRQDone = true
}

// Read implements memory.Ram.
func (s *System) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x0FFF:
		return s.RAM[addr]
	case addr >= 0x1800 && addr <= 0x1807:
		row := 0
		if s.Outlatch[7] {
			row = 1
		}
		if s.PressedKeys[row][addr&7] {
			return 0x7F
		}
		return 0xFF
	case addr == 0x2000:
		return s.Bitboard[s.Mux]
	case addr >= 0x4000 && addr <= 0x7FFF:
		return s.Rom.Book[addr-0x4000]
	case addr >= 0x8000:
		return s.Rom.Program[addr-0x8000]
	default:
		Log.WithField("addr", fmt.Sprintf("%04X", addr)).Debug("read of unmapped address, returning FF")
		return 0xFF
	}
}

// Write implements memory.Ram.
func (s *System) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x0FFF:
		s.RAM[addr] = val
	case addr >= 0x1000 && addr <= 0x1007:
		s.Outlatch[addr&7] = val&0x80 != 0
	case addr == 0x2800:
		s.writeDisplay(val)
	case addr == 0x3000:
		s.writeLEDRow(val)
	case addr == 0x3800:
		s.Mux = trailingZeros8(^val)
	default:
		Log.WithFields(logrus.Fields{
			"addr":  fmt.Sprintf("%04X", addr),
			"value": val,
		}).Debug("write to unmapped address, ignoring")
	}
}

// writeDisplay implements the 0x2800 IRQ-acknowledge-and-display-shift
// write. There is no IRQ line to clear: the driver delivers each
// interrupt directly and then waits for IRQDone to go true, which is
// the only IRQ state this method touches.
func (s *System) writeDisplay(val uint8) {
	s.IRQDone = true
	if s.Outlatch[7] {
		s.Display[s.displayPos] = val
	} else {
		s.Display[s.displayPos] = ^val
	}
	s.displayPos--
	if s.displayPos < 0 {
		s.displayPos = 3
		if s.Display != s.lastDisplay {
			s.lastDisplay = s.Display
			Log.WithField("display", fmt.Sprintf("%08b", s.Display)).Debug("Display")
		}
	}
}

// writeLEDRow implements the 0x3000 column-LED write: only the column
// selected by Mux is updated per cycle, and a nonzero byte updates the
// most-recently-lit square.
func (s *System) writeLEDRow(val uint8) {
	s.BoardLEDs[s.Mux] = val
	if val != 0 {
		s.LEDSquare = s.Mux*8 + trailingZeros8(val)
	}
}

// ReadAddr implements memory.Ram: a little-endian 16-bit read used by
// the CPU core for vector fetches and indirect addressing.
func (s *System) ReadAddr(addr uint16) uint16 {
	lo := uint16(s.Read(addr))
	hi := uint16(s.Read(addr + 1))
	return lo | hi<<8
}

// ResetDisplayPosition restarts the LCD refresh cycle at digit 3, the
// state the firmware expects immediately after a CPU reset.
func (s *System) ResetDisplayPosition() {
	s.displayPos = 3
}

// ToggleSensor flips the sensor bit for the given file/rank, i.e. a
// single half-move (a lift or a place depending on prior state).
func (s *System) ToggleSensor(file, rank int) {
	s.Bitboard[rank] ^= 1 << uint(file)
}

// SetKey sets or clears the keypad matrix entry for key index k (0-15),
// matching the firmware's row/column split: row 1 holds keys 8-15.
func (s *System) SetKey(k int, pressed bool) {
	row := 0
	if k >= 8 {
		row = 1
	}
	s.PressedKeys[row][k%8] = pressed
}

func trailingZeros8(v uint8) int {
	if v == 0 {
		return 8
	}
	n := 0
	for v&1 == 0 {
		v >>= 1
		n++
	}
	return n
}
