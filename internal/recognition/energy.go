package recognition

import (
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
)

const (
	// DefaultMinEnergy is the floor of the adaptive threshold, in sample units.
	DefaultMinEnergy = 300
	// DefaultCalibration is the leading window sampled for ambient noise.
	DefaultCalibration = 200 * time.Millisecond

	energyRatio = 1.5
	// digitalFloor is the largest sample magnitude still counted as digital
	// silence (dither and rounding noise).
	digitalFloor = 1
)

// calibration is the ambient level measured from the start of a chunk.
type calibration struct {
	ambient   float64
	threshold float64
}

// calibrate measures the RMS of the leading window of a mono buffer.
func calibrate(buf *audio.Buffer, window time.Duration, minEnergy float64) calibration {
	end := min(buf.FramesIn(window), buf.Len())
	ambient := buf.RMS(0, end)
	return calibration{
		ambient:   ambient,
		threshold: max(minEnergy, ambient*energyRatio),
	}
}

// digitallySilent reports whether no sample rises above digitalFloor. Quiet
// but non-zero audio is left for the backend to judge.
func digitallySilent(buf *audio.Buffer) bool {
	for _, s := range buf.Samples {
		if s > digitalFloor || s < -digitalFloor {
			return false
		}
	}
	return true
}
