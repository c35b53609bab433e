package transcript

import (
	"errors"
	"testing"
)

func TestAssemble(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		pieces  []Piece
		text    string
		outcome Outcome
	}{
		{
			name:    "no pieces",
			outcome: OutcomeEmptyInput,
		},
		{
			name:    "in order",
			pieces:  []Piece{OK(0, "hello"), OK(1, "world")},
			text:    "hello world",
			outcome: OutcomeOK,
		},
		{
			name:    "out of order completion",
			pieces:  []Piece{OK(2, "c"), OK(0, "a"), OK(1, "b")},
			text:    "a b c",
			outcome: OutcomeOK,
		},
		{
			name:    "failed chunks are omitted",
			pieces:  []Piece{OK(0, "a"), Unrecognized(1), Failed(2, boom), OK(3, "d")},
			text:    "a d",
			outcome: OutcomeOK,
		},
		{
			name:    "whitespace is trimmed",
			pieces:  []Piece{OK(0, "  a "), OK(1, "\tb\n")},
			text:    "a b",
			outcome: OutcomeOK,
		},
		{
			name:    "all unrecognized",
			pieces:  []Piece{Unrecognized(0), Unrecognized(1)},
			outcome: OutcomeNoSpeech,
		},
		{
			name:    "backend failure",
			pieces:  []Piece{Unrecognized(0), Failed(1, boom)},
			outcome: OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tt.pieces)
			if got.Text != tt.text {
				t.Errorf("Assemble().Text = %q, want %q", got.Text, tt.text)
			}
			if got.Outcome != tt.outcome {
				t.Errorf("Assemble().Outcome = %v, want %v", got.Outcome, tt.outcome)
			}
		})
	}
}

func TestAssembleDoesNotReorderInput(t *testing.T) {
	in := []Piece{OK(1, "b"), OK(0, "a")}
	got := Assemble(in)

	if in[0].Index != 1 {
		t.Errorf("input reordered: %+v", in)
	}
	for i, p := range got.Pieces {
		if p.Index != i {
			t.Errorf("Pieces[%d].Index = %d", i, p.Index)
		}
	}
}

func TestCounts(t *testing.T) {
	tr := Assemble([]Piece{OK(0, "a"), Unrecognized(1), Unrecognized(2), Failed(3, errors.New("x"))})
	ok, unrec, failed := tr.Counts()
	if ok != 1 || unrec != 2 || failed != 1 {
		t.Errorf("Counts() = %d, %d, %d, want 1, 2, 1", ok, unrec, failed)
	}
}
