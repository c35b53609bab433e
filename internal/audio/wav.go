package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// pcmStreamer plays a mono int16 slice as a beep.Streamer.
type pcmStreamer struct {
	samples []int16
	scale   float64
	pos     int
}

func (s *pcmStreamer) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for n < len(buf) && s.pos < len(s.samples) {
		v := float64(s.samples[s.pos]) / s.scale
		buf[n][0], buf[n][1] = v, v
		n++
		s.pos++
	}
	return n, true
}

func (s *pcmStreamer) Err() error { return nil }

// EncodeWAV writes a mono buffer as 16-bit PCM WAV.
func EncodeWAV(w io.WriteSeeker, b *Buffer) error {
	if b.Channels != 1 {
		return fmt.Errorf("encode wav: want mono buffer, got %d channels", b.Channels)
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(b.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	return wav.Encode(w, &pcmStreamer{samples: b.Samples, scale: b.MaxAmplitude()}, format)
}

// WriteWAVFile exports b to path, replacing any existing file.
func WriteWAVFile(path string, b *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	if err := EncodeWAV(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
