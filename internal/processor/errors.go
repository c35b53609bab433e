package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

var (
	// ErrTranscriptionFailed means no chunk was recognized and at least one
	// backend call faulted.
	ErrTranscriptionFailed = errors.New("transcription failed")
	// ErrNoSpeech means every chunk was processed but none held speech.
	ErrNoSpeech = errors.New("no speech detected")
)

// Err maps a non-OK transcript outcome to an error; nil when text exists.
func (r *Result) Err() error {
	switch r.Transcript.Outcome {
	case transcript.OutcomeOK:
		return nil
	case transcript.OutcomeEmptyInput:
		return audio.ErrEmptyInput
	case transcript.OutcomeNoSpeech:
		return ErrNoSpeech
	}
	return ErrTranscriptionFailed
}

// UserMessage turns a pipeline error into something to show an end user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, audio.ErrEmptyInput):
		return "The recording is empty. Please choose an audio file and try again."
	case errors.Is(err, audio.ErrDecode):
		return "We couldn't read this audio file. Please try a different audio format such as WAV, MP3, FLAC or OGG."
	case errors.Is(err, ErrNoSpeech):
		return "No speech was detected in the recording. Try a clearer recording or move closer to the microphone."
	case errors.Is(err, ErrTranscriptionFailed):
		return "The speech recognition service is unavailable right now. Please try again in a few minutes."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "Processing was stopped before it finished. Try again or upload a shorter recording."
	}
	return "Something went wrong while processing the recording. Please try again."
}
