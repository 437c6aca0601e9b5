package mm2sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BierLiebHaber/mephisto-emu/internal/mm2rom"
)

func newTestSystem() *System {
	img := &mm2rom.Images{}
	for i := range img.Program {
		img.Program[i] = byte(i)
	}
	for i := range img.Book {
		img.Book[i] = byte(i)
	}
	return New(img)
}

func TestPowerOnFillsRAMWithFF(t *testing.T) {
	s := newTestSystem()
	for _, b := range s.RAM {
		require.Equal(t, byte(0xFF), b)
	}
	assert.True(t, s.IRQDone)
}

func TestRAMReadWrite(t *testing.T) {
	s := newTestSystem()
	s.Write(0x0042, 0x17)
	assert.Equal(t, byte(0x17), s.Read(0x0042))
}

func TestOutlatchDecodesMSB(t *testing.T) {
	s := newTestSystem()
	s.Write(0x1006, 0x80)
	assert.True(t, s.Outlatch[6])
	s.Write(0x1006, 0x00)
	assert.False(t, s.Outlatch[6])
}

func TestKeypadReadReflectsRowSelect(t *testing.T) {
	s := newTestSystem()
	s.SetKey(3, true)
	assert.Equal(t, byte(0x7F), s.Read(0x1803))
	assert.Equal(t, byte(0xFF), s.Read(0x1804))

	s.SetKey(11, true)
	s.Write(0x1007, 0x80) // select row 1
	assert.Equal(t, byte(0x7F), s.Read(0x1803))
}

func TestBitboardReadUsesMux(t *testing.T) {
	s := newTestSystem()
	s.Bitboard[2] = 0xAB
	s.Write(0x3800, ^byte(1<<2)) // mux = 2
	assert.Equal(t, 2, s.Mux)
	assert.Equal(t, byte(0xAB), s.Read(0x2000))
}

func TestBookAndProgramROMMapping(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, byte(0x10), s.Read(0x4010))
	assert.Equal(t, byte(0x20), s.Read(0x8020))
}

func TestUnknownAddressReturnsFF(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, byte(0xFF), s.Read(0x3000)) // write-only, reading it is unmapped
}

func TestDisplayWriteCyclesPositionAndPolarity(t *testing.T) {
	s := newTestSystem()
	s.Write(0x1007, 0x80) // outlatch7 set: values pass through unchanged
	s.IRQDone = false
	s.Write(0x2800, 0x11)
	s.Write(0x2800, 0x22)
	s.Write(0x2800, 0x33)
	s.Write(0x2800, 0x44)
	assert.Equal(t, [4]byte{0x44, 0x33, 0x22, 0x11}, s.Display) // filled from position 3 down
	assert.True(t, s.IRQDone)
}

func TestDisplayWriteInvertsWhenOutlatch7Clear(t *testing.T) {
	s := newTestSystem()
	s.Write(0x1007, 0x00)
	s.Write(0x2800, 0x11)
	assert.Equal(t, ^byte(0x11), s.Display[3])
}

func TestLEDRowWriteUpdatesSquareOnNonzero(t *testing.T) {
	s := newTestSystem()
	s.Write(0x3800, ^byte(1<<5)) // mux = 5
	s.Write(0x3000, 1<<2)        // file 2 lit
	assert.Equal(t, 5*8+2, s.LEDSquare)
}

func TestLEDRowWriteOfZeroDoesNotMoveSquare(t *testing.T) {
	s := newTestSystem()
	s.Write(0x3800, ^byte(1<<5))
	s.Write(0x3000, 1<<2)
	prev := s.LEDSquare
	s.Write(0x3800, ^byte(1<<0))
	s.Write(0x3000, 0)
	assert.Equal(t, prev, s.LEDSquare)
}

func TestToggleSensorFlipsBit(t *testing.T) {
	s := newTestSystem()
	s.ToggleSensor(3, 1)
	assert.Equal(t, byte(1<<3), s.Bitboard[1])
	s.ToggleSensor(3, 1)
	assert.Equal(t, byte(0), s.Bitboard[1])
}

func TestReadAddrIsLittleEndian(t *testing.T) {
	s := newTestSystem()
	s.Write(0x0010, 0x34)
	s.Write(0x0011, 0x12)
	assert.Equal(t, uint16(0x1234), s.ReadAddr(0x0010))
}
