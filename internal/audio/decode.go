package audio

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Containers recognised by sniffContainer.
const (
	ContainerWAV     = "wav"
	ContainerMP3     = "mp3"
	ContainerFLAC    = "flac"
	ContainerOgg     = "ogg"
	ContainerUnknown = ""
)

// sniffContainer guesses the container from magic bytes.
func sniffContainer(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return ContainerWAV
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return ContainerFLAC
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return ContainerOgg
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return ContainerMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return ContainerMP3
	}
	return ContainerUnknown
}

// canonicalContainer maps a declared format hint onto a container name.
// Hints that beep cannot decode come back unchanged.
func canonicalContainer(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "wav", "wave", "audio/wav", "audio/x-wav", "audio/wave":
		return ContainerWAV
	case "mp3", "mpeg", "audio/mpeg", "audio/mp3":
		return ContainerMP3
	case "flac", "audio/flac", "audio/x-flac":
		return ContainerFLAC
	case "ogg", "oga", "audio/ogg", "vorbis":
		return ContainerOgg
	}
	return f
}

// decoded is the mono float signal produced by an in-process decoder.
type decoded struct {
	samples    []float64
	sampleRate int
	channels   int
	precision  int
}

// decodeInProcess decodes data with beep. Only the containers listed above
// are handled.
func decodeInProcess(data []byte, container string) (*decoded, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch container {
	case ContainerWAV:
		stream, format, err = wav.Decode(bytes.NewReader(data))
	case ContainerMP3:
		stream, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case ContainerFLAC:
		stream, format, err = flac.Decode(bytes.NewReader(data))
	case ContainerOgg:
		stream, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("no in-process decoder for %q", container)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", container, err)
	}
	defer stream.Close()

	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("decode %s: invalid sample rate %d", container, format.SampleRate)
	}

	samples, err := readMono(stream, format.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", container, err)
	}

	return &decoded{
		samples:    samples,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
		precision:  format.Precision,
	}, nil
}

// readMono drains s, averaging the two beep channels into one when the
// source has more than one channel.
func readMono(s beep.Streamer, channels int) ([]float64, error) {
	buf := make([][2]float64, 4096)
	var out []float64
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			if channels > 1 {
				out = append(out, (frame[0]+frame[1])/2)
			} else {
				out = append(out, frame[0])
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
