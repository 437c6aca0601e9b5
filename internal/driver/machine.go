package driver

import (
	"github.com/jmchacon/6502/cpu"
	"github.com/sirupsen/logrus"

	"github.com/BierLiebHaber/mephisto-emu/internal/board"
	"github.com/BierLiebHaber/mephisto-emu/internal/mm2rom"
	"github.com/BierLiebHaber/mephisto-emu/internal/mm2sys"
)

// Log is the driver's own tracer, separate from mm2sys.Log so the two
// subsystems can be leveled independently even though both answer to
// the same "Debug" UCI option.
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

// SetDebug raises or lowers both the driver's and the bus's trace
// level, the effect of "setoption name Debug value <bool>".
func SetDebug(enabled bool) {
	level := logrus.InfoLevel
	if enabled {
		level = logrus.DebugLevel
	}
	Log.SetLevel(level)
	mm2sys.Log.SetLevel(level)
}

// Emulator is the seam a UCI front-end drives. It exists so a future
// second Mephisto model could be swapped in behind the same interface
// without touching cmd/mephisto-uci.
type Emulator interface {
	SetDifficulty(n int) error
	SetFEN(fen string)
	SetPosition(baseline board.Board, baselineIsStartpos bool, moves []board.Move)
	ForceMoves(moves []board.Move)
	PlayMove(mv board.Move)
	GenMove() GenMoveResult
}

// Machine is the top-level emulator: a 65C02 core stepping against
// the MM2's MMIO fabric, plus the host board mirror and the small
// pieces of session state (difficulty, tone counter, whether the last
// entered line was a forced sequence) the driver operations need.
type Machine struct {
	CPU *cpu.Processor
	Sys *mm2sys.System
	Cur board.Board

	difficulty       int // zero-based: 0 == firmware level 1
	instructionCount int
	toneCount        uint64
	lastMoveForced   bool
}

var _ Emulator = (*Machine)(nil)

// New constructs a Machine over the given ROM images, with the CPU and
// bus both freshly powered on. Callers still need to call Init before
// issuing any driver operation, matching the firmware's own cold-boot
// sequence.
func New(rom *mm2rom.Images) (*Machine, error) {
	sys := mm2sys.New(rom)
	p, err := cpu.Init(cpu.CPU_CMOS, sys)
	if err != nil {
		return nil, err
	}
	return &Machine{
		CPU:        p,
		Sys:        sys,
		Cur:        board.Default(),
		difficulty: 0,
	}, nil
}

// assertHardwareIRQ delivers the timing harness's periodic interrupt.
// github.com/jmchacon/6502's Processor has no pin-level IRQ input in
// this build — only the software BRK opcode vectors through
// IRQ_VECTOR — so the hardware sequence (push PCH, PCL, P with the
// break flag clear, set the interrupt-disable flag, load PC from the
// vector) is reproduced here directly against the processor's exported
// registers, the same sequence BRK performs internally.
func assertHardwareIRQ(p *cpu.Processor) {
	p.PushStack(uint8(p.PC >> 8))
	p.PushStack(uint8(p.PC & 0xFF))
	p.PushStack(p.P &^ cpu.P_B)
	p.P |= cpu.P_INTERRUPT
	p.PC = p.Ram.ReadAddr(cpu.IRQ_VECTOR)
}

// awaitInterrupt runs one quantum: up to 2000 instructions, then an
// IRQ the firmware must acknowledge via a write to 0x2800 before the
// quantum is considered complete.
func (m *Machine) awaitInterrupt() {
	for m.instructionCount < 2000 {
		m.step()
		m.instructionCount++
	}
	m.instructionCount = 0

	assertHardwareIRQ(m.CPU)
	m.Sys.IRQDone = false
	for !m.Sys.IRQDone {
		m.step()
	}
}

func (m *Machine) step() {
	if _, err := m.CPU.Step(); err != nil {
		Log.WithError(err).Error("CPU halted")
		return
	}
	if m.Sys.Outlatch[6] {
		m.toneCount++
	}
}

// wait1Sec runs 500 quanta, the emulator's unit of firmware wall-clock
// time. No real-time clock is ever consulted.
func (m *Machine) wait1Sec() {
	for i := 0; i < 500; i++ {
		m.awaitInterrupt()
	}
}

// Init resets the CPU and display state and lets the firmware run
// through its two-second startup sequence.
func (m *Machine) Init() {
	m.CPU.Reset()
	m.Sys.ResetDisplayPosition()
	m.wait1Sec()
	m.wait1Sec()
}

// pressKey presses and releases a keypad button, with the idle
// seconds the firmware's matrix scan and debounce require both before
// and after.
func (m *Machine) pressKey(b button) {
	m.wait1Sec()
	m.Sys.SetKey(int(b), true)
	m.wait1Sec()
	m.Sys.SetKey(int(b), false)
	m.wait1Sec()
}

// makeHalfMove toggles the sensor under sq: either a lift or a place,
// depending on the bit's prior state.
func (m *Machine) makeHalfMove(sq board.Square) {
	m.wait1Sec()
	m.Sys.ToggleSensor(sq.File(), sq.Rank())
	m.wait1Sec()
}
