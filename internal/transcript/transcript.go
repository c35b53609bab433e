// Package transcript models per-chunk recognition results and joins them
// into the final text.
package transcript

import (
	"sort"
	"strings"
)

// Status is the outcome of recognizing one chunk.
type Status int

const (
	StatusOK Status = iota
	StatusUnrecognized
	StatusBackendError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnrecognized:
		return "unrecognized"
	case StatusBackendError:
		return "backend_error"
	}
	return "unknown"
}

// Piece is the recognition result of a single chunk.
type Piece struct {
	Index  int
	Text   string
	Status Status
	Err    error
}

// OK returns a recognized piece.
func OK(index int, text string) Piece {
	return Piece{Index: index, Text: text, Status: StatusOK}
}

// Unrecognized returns a piece whose audio held no interpretable speech.
func Unrecognized(index int) Piece {
	return Piece{Index: index, Status: StatusUnrecognized}
}

// Failed returns a piece whose backend call faulted.
func Failed(index int, err error) Piece {
	return Piece{Index: index, Status: StatusBackendError, Err: err}
}

// Outcome summarizes a whole transcript.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmptyInput
	// OutcomeNoSpeech means every chunk was unrecognized.
	OutcomeNoSpeech
	// OutcomeFailed means no chunk succeeded and at least one backend call
	// faulted.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmptyInput:
		return "empty_input"
	case OutcomeNoSpeech:
		return "no_speech"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Transcript is the assembled text plus the pieces it came from.
type Transcript struct {
	Text    string
	Pieces  []Piece
	Outcome Outcome
}

// Counts returns how many pieces ended in each status.
func (t Transcript) Counts() (ok, unrecognized, failed int) {
	for _, p := range t.Pieces {
		switch p.Status {
		case StatusOK:
			ok++
		case StatusUnrecognized:
			unrecognized++
		case StatusBackendError:
			failed++
		}
	}
	return ok, unrecognized, failed
}

// Assemble orders pieces by chunk index and joins the text of OK pieces
// with single spaces. The input slice is not modified.
func Assemble(pieces []Piece) Transcript {
	if len(pieces) == 0 {
		return Transcript{Outcome: OutcomeEmptyInput}
	}

	ordered := make([]Piece, len(pieces))
	copy(ordered, pieces)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	var parts []string
	failed := false
	for _, p := range ordered {
		switch p.Status {
		case StatusOK:
			if text := strings.TrimSpace(p.Text); text != "" {
				parts = append(parts, text)
			}
		case StatusBackendError:
			failed = true
		}
	}

	t := Transcript{Text: strings.Join(parts, " "), Pieces: ordered}
	switch {
	case t.Text != "":
		t.Outcome = OutcomeOK
	case failed:
		t.Outcome = OutcomeFailed
	default:
		t.Outcome = OutcomeNoSpeech
	}
	return t
}
