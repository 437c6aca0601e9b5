// Command mephisto-uci is a UCI chess engine front-end for the
// Mephisto MM2 emulator: it speaks the small UCI subset a GUI expects
// on stdin/stdout, translating each command into driver operations
// against a software MM2.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/BierLiebHaber/mephisto-emu/internal/board"
	"github.com/BierLiebHaber/mephisto-emu/internal/driver"
	"github.com/BierLiebHaber/mephisto-emu/internal/mm2rom"
	"github.com/BierLiebHaber/mephisto-emu/internal/uci"
)

func main() {
	rom, err := mm2rom.Load(mm2rom.DefaultProgramPath, mm2rom.DefaultBookPath)
	if err != nil {
		driver.Log.WithError(err).Fatal("could not load ROM images")
	}

	machine, err := driver.New(rom)
	if err != nil {
		driver.Log.WithError(err).Fatal("could not initialize 65C02 core")
	}

	reader := uci.NewReader(os.Stdin, os.Stdout)

	e := &engine{machine: machine, out: os.Stdout, stagedDifficulty: 1}
	e.run(reader)
}

// engine holds the small bit of session state that lives above the
// driver: the difficulty a "setoption" has staged but not yet applied,
// and whether isready has run its one-time init.
type engine struct {
	machine          *driver.Machine
	out              io.Writer
	stagedDifficulty int
	initialized      bool
}

func (e *engine) run(reader *uci.Reader) {
	for {
		msg, ok := reader.TryRecv()
		if !ok {
			if reader.Closed() {
				panic("stdin closed: UCI reader disconnected")
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		e.handle(msg)
	}
}

func (e *engine) handle(msg uci.Message) {
	switch msg.Kind {
	case uci.KindUCI:
		e.printIntro()
	case uci.KindIsReady:
		e.handleIsReady()
	case uci.KindSetOption:
		e.handleSetOption(msg)
	case uci.KindUCINewGame:
		// accepted, noop: the firmware carries no separate "new game"
		// signal beyond whatever position/go commands follow.
	case uci.KindPosition:
		e.handlePosition(msg)
	case uci.KindGo:
		e.handleGo()
	case uci.KindQuit:
		os.Exit(0)
	}
}

func (e *engine) printIntro() {
	fmt.Fprintln(e.out, uci.Id{Name: "Mephisto MM2"})
	fmt.Fprintln(e.out, uci.Id{Author: "Ulf Rathsman, Emulator by: Lukas Nöllemeyer"})
	fmt.Fprintln(e.out, uci.SpinOption{Name: "Difficulty", Default: 1, Min: 1, Max: 10})
	fmt.Fprintln(e.out, uci.CheckOption{Name: "OwnBook", Default: true})
	fmt.Fprintln(e.out, uci.CheckOption{Name: "Debug", Default: false})
	fmt.Fprintln(e.out, uci.UciOk)
}

// handleIsReady runs the firmware's cold-boot sequence exactly once
// per session. Every isready after the first never reaches here: the
// reader answers it directly.
func (e *engine) handleIsReady() {
	if !e.initialized {
		e.machine.Init()
		if err := e.machine.SetDifficulty(e.stagedDifficulty); err != nil {
			driver.Log.WithError(err).Warn("staged difficulty rejected, leaving firmware default")
		}
		e.initialized = true
	}
	fmt.Fprintln(e.out, uci.ReadyOk)
}

func (e *engine) handleSetOption(msg uci.Message) {
	switch msg.OptionName {
	case "Difficulty":
		n, err := strconv.Atoi(msg.OptionValue)
		if err != nil {
			driver.Log.WithField("value", msg.OptionValue).Warn("non-numeric Difficulty value, ignoring")
			return
		}
		e.stagedDifficulty = n
		if e.initialized {
			if err := e.machine.SetDifficulty(n); err != nil {
				driver.Log.WithError(err).Warn("rejected Difficulty value")
			}
		}
	case "Debug":
		driver.SetDebug(msg.OptionValue == "true")
	case "OwnBook":
		// accepted, currently noop: opening-book selection is baked
		// into the ROM image, not switchable at runtime.
	}
}

func (e *engine) handlePosition(msg uci.Message) {
	baseline := board.Default()
	baselineIsStartpos := true
	if !msg.Startpos {
		b, err := board.FromFEN(msg.FEN)
		if err != nil {
			driver.Log.WithError(err).Warn("invalid FEN in position command, using startpos")
		} else {
			baseline = b
			baselineIsStartpos = false
		}
	}

	moves := make([]board.Move, 0, len(msg.Moves))
	for _, ms := range msg.Moves {
		mv, err := board.ParseMove(ms)
		if err != nil {
			driver.Log.WithField("move", ms).Warn("unparseable move in position command, stopping there")
			break
		}
		moves = append(moves, mv)
	}

	e.machine.SetPosition(baseline, baselineIsStartpos, moves)
}

func (e *engine) handleGo() {
	result := e.machine.GenMove()
	if result.NoMove {
		fmt.Fprintln(e.out, uci.BestMove("0000", ""))
		return
	}

	ponder := ""
	if result.Ponder != nil {
		ponder = result.Ponder.String()
	}

	switch {
	case result.MateIn != nil:
		fmt.Fprintln(e.out, uci.InfoMate(*result.MateIn))
	case result.HasScore:
		fmt.Fprintln(e.out, uci.InfoScore(result.ScoreCP, result.Nodes))
	}
	fmt.Fprintln(e.out, uci.BestMove(result.Move.String(), ponder))
}
