package uci

import "fmt"

// Id is the engine identification line. UCI convention (and the
// original Mephisto intro) emits name and author as two separate
// lines rather than combining them.
type Id struct {
	Name   string
	Author string
}

func (i Id) String() string {
	if i.Author != "" {
		return fmt.Sprintf("id author %s", i.Author)
	}
	return fmt.Sprintf("id name %s", i.Name)
}

// SpinOption is an integer option with bounds, e.g. Difficulty.
type SpinOption struct {
	Name               string
	Default, Min, Max int
}

func (o SpinOption) String() string {
	return fmt.Sprintf("option name %s type spin default %d min %d max %d", o.Name, o.Default, o.Min, o.Max)
}

// CheckOption is a boolean option, e.g. OwnBook or Debug.
type CheckOption struct {
	Name    string
	Default bool
}

func (o CheckOption) String() string {
	return fmt.Sprintf("option name %s type check default %t", o.Name, o.Default)
}

// UciOk and ReadyOk are the two fixed acknowledgement lines.
const (
	UciOk   = "uciok"
	ReadyOk = "readyok"
)

// InfoMate formats a mate-in-n score line.
func InfoMate(n int) string {
	return fmt.Sprintf("info score mate %d", n)
}

// InfoScore formats a centipawn score with a node-count depth,
// matching the pair of attributes the original emits together after
// parsing the firmware's evaluation and node-count displays.
func InfoScore(centipawns int, nodes int) string {
	return fmt.Sprintf("info score cp %d depth %d", centipawns, nodes)
}

// InfoDebug formats a free-form diagnostic line, only ever emitted
// when the Debug option is enabled.
func InfoDebug(format string, args ...any) string {
	return "info Debug " + fmt.Sprintf(format, args...)
}

// BestMove formats the final reply to "go": the move the firmware
// chose, and optionally the ponder move it was also holding on its
// display at the time.
func BestMove(move string, ponder string) string {
	if ponder != "" {
		return fmt.Sprintf("bestmove %s ponder %s", move, ponder)
	}
	return fmt.Sprintf("bestmove %s", move)
}
