package driver

import "fmt"

// InvalidDifficultyError reports a requested difficulty outside the
// firmware's supported range. Recoverable: the caller should leave the
// prior difficulty in effect.
type InvalidDifficultyError struct {
	Requested int
}

func (e *InvalidDifficultyError) Error() string {
	return fmt.Sprintf("difficulty must be between 1 and 10, got %d", e.Requested)
}

// InvalidFENError reports a FEN string the board package could not
// parse. Non-fatal: the caller logs it and falls back to the default
// starting position, matching the firmware's own forgiving behavior.
type InvalidFENError struct {
	FEN        string
	Underlying error
}

func (e *InvalidFENError) Error() string {
	return fmt.Sprintf("invalid FEN %q: %v", e.FEN, e.Underlying)
}

func (e *InvalidFENError) Unwrap() error { return e.Underlying }

// UnknownPromotionError is raised when the firmware's promotion
// prompt shows a piece letter outside {D,T,5,L}. Per the error
// handling design this is unrecoverable: the display decoder and the
// promotion table must be out of sync with the ROM, so the session
// panics rather than guessing.
type UnknownPromotionError struct {
	Glyph rune
}

func (e *UnknownPromotionError) Error() string {
	return fmt.Sprintf("unknown promotion glyph %q", e.Glyph)
}

// IllegalMoveError is raised when PlayMove is asked to apply a move
// the host board mirror does not consider legal. Unrecoverable: it
// means the mirror and the firmware have diverged.
type IllegalMoveError struct {
	Move string
	FEN  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s against board %s", e.Move, e.FEN)
}
