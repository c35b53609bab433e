package recognition

import "errors"

var (
	// ErrUnrecognized means the audio was present but not interpretable as
	// speech.
	ErrUnrecognized = errors.New("speech not recognized")
	ErrNoCredential = errors.New("recognition backend credential missing")
)
