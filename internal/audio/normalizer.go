package audio

import (
	"context"
	"fmt"
	"io"
)

// Normalize decodes r into a 16 kHz mono 16-bit Buffer.
func (n *implNormalizer) Normalize(ctx context.Context, r io.Reader, format string) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %v", ErrDecode, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	container := canonicalContainer(format)
	if sniffed := sniffContainer(data); sniffed != ContainerUnknown {
		container = sniffed
	}

	dec, err := n.decode(ctx, data, container)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	n.logger.Debug(ctx, "Raw audio: %d frames, channels=%d, precision=%d, rate=%d",
		len(dec.samples), dec.channels, dec.precision, dec.sampleRate)

	mono, err := resample(dec.samples, dec.sampleRate, TargetSampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	buf := NewBuffer(FromFloat(mono), TargetSampleRate)
	n.logger.Debug(ctx, "Normalized audio: duration=%s, rate=%d", buf.Duration(), buf.SampleRate)
	return buf, nil
}

func (n *implNormalizer) decode(ctx context.Context, data []byte, container string) (*decoded, error) {
	switch container {
	case ContainerWAV, ContainerMP3, ContainerFLAC, ContainerOgg:
		dec, err := decodeInProcess(data, container)
		if err == nil {
			return dec, nil
		}
		// Ogg may carry Opus rather than Vorbis; let ffmpeg try.
		n.logger.Warn(ctx, "In-process %s decode failed, trying ffmpeg: %v", container, err)
	}

	wavData, err := n.transcode(ctx, data, container)
	if err != nil {
		return nil, err
	}
	return decodeInProcess(wavData, ContainerWAV)
}
