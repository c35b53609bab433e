package audio

import "errors"

var (
	// ErrDecode means the container or codec could not be parsed.
	ErrDecode = errors.New("audio: cannot decode input")
	// ErrEmptyInput means no bytes were supplied.
	ErrEmptyInput = errors.New("audio: empty input")
)
