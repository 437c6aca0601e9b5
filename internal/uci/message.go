// Package uci implements the small subset of the Universal Chess
// Interface this engine honors: parsing inbound commands from a GUI,
// and formatting the handful of outbound message kinds the driver
// needs to emit (id/option/uciok at startup, readyok, info lines, and
// bestmove).
package uci

import "strings"

// Kind identifies which inbound command a Message carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindUCI
	KindIsReady
	KindSetOption
	KindUCINewGame
	KindPosition
	KindGo
	KindQuit
)

// Message is a parsed inbound UCI command. Only the fields relevant to
// its Kind are populated.
type Message struct {
	Kind Kind

	// SetOption
	OptionName  string
	OptionValue string

	// Position
	Startpos bool
	FEN      string
	Moves    []string // long algebraic, e.g. "e2e4", in order
}

// Parse turns one line of UCI input into a Message. Unrecognized or
// malformed lines parse as KindUnknown rather than erroring — per the
// protocol, an engine silently ignores commands it doesn't understand.
func Parse(line string) Message {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{Kind: KindUnknown}
	}

	switch fields[0] {
	case "uci":
		return Message{Kind: KindUCI}
	case "isready":
		return Message{Kind: KindIsReady}
	case "ucinewgame":
		return Message{Kind: KindUCINewGame}
	case "quit":
		return Message{Kind: KindQuit}
	case "setoption":
		return parseSetOption(fields)
	case "position":
		return parsePosition(fields)
	case "go":
		return Message{Kind: KindGo}
	default:
		return Message{Kind: KindUnknown}
	}
}

// parseSetOption handles "setoption name <Name> value <Value>",
// where <Name> may itself contain spaces up to the "value" keyword.
func parseSetOption(fields []string) Message {
	nameIdx, valueIdx := -1, -1
	for i, f := range fields {
		switch f {
		case "name":
			nameIdx = i
		case "value":
			valueIdx = i
		}
	}
	if nameIdx < 0 {
		return Message{Kind: KindUnknown}
	}
	m := Message{Kind: KindSetOption}
	if valueIdx > nameIdx {
		m.OptionName = strings.Join(fields[nameIdx+1:valueIdx], " ")
		m.OptionValue = strings.Join(fields[valueIdx+1:], " ")
	} else {
		m.OptionName = strings.Join(fields[nameIdx+1:], " ")
	}
	return m
}

// parsePosition handles "position startpos [moves ...]" and
// "position fen <FEN...> [moves ...]". FEN is six space-separated
// fields, so its extent must be found before looking for "moves".
func parsePosition(fields []string) Message {
	if len(fields) < 2 {
		return Message{Kind: KindUnknown}
	}
	m := Message{Kind: KindPosition}
	rest := fields[1:]

	switch rest[0] {
	case "startpos":
		m.Startpos = true
		rest = rest[1:]
	case "fen":
		rest = rest[1:]
		fenFields := 0
		for fenFields < len(rest) && fenFields < 6 && rest[fenFields] != "moves" {
			fenFields++
		}
		m.FEN = strings.Join(rest[:fenFields], " ")
		rest = rest[fenFields:]
	default:
		return Message{Kind: KindUnknown}
	}

	if len(rest) > 0 && rest[0] == "moves" {
		m.Moves = append([]string(nil), rest[1:]...)
	}
	return m
}
