package segmenter

import (
	"math"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
)

// energy answers windowed RMS queries in O(1) from prefix sums of squares.
type energy struct {
	prefix []int64
}

func newEnergy(samples []int16) *energy {
	prefix := make([]int64, len(samples)+1)
	for i, s := range samples {
		v := int64(s)
		prefix[i+1] = prefix[i] + v*v
	}
	return &energy{prefix: prefix}
}

func (e *energy) rms(start, end int) float64 {
	if end <= start {
		return 0
	}
	return math.Sqrt(float64(e.prefix[end]-e.prefix[start]) / float64(end-start))
}

// detectSilence returns merged [start, end) frame ranges whose every
// MinSilence-long window sits at or below the threshold.
func detectSilence(buf *audio.Buffer, e *energy, opts Options) [][2]int {
	n := buf.Len()
	minLen := max(buf.FramesIn(opts.MinSilence), 1)
	step := max(buf.FramesIn(opts.SeekStep), 1)
	if n < minLen {
		return nil
	}

	thresh := buf.MaxAmplitude() * math.Pow(10, opts.SilenceThreshDB/20)

	lastStart := n - minLen
	var starts []int
	check := func(i int) {
		if e.rms(i, i+minLen) <= thresh {
			starts = append(starts, i)
		}
	}
	for i := 0; i <= lastStart; i += step {
		check(i)
	}
	if lastStart%step != 0 {
		check(lastStart)
	}
	if len(starts) == 0 {
		return nil
	}

	var ranges [][2]int
	prev := starts[0]
	rangeStart := prev
	for _, i := range starts[1:] {
		continuous := i == prev+step
		hasGap := i > prev+minLen
		if !continuous && hasGap {
			ranges = append(ranges, [2]int{rangeStart, prev + minLen})
			rangeStart = i
		}
		prev = i
	}
	ranges = append(ranges, [2]int{rangeStart, prev + minLen})
	return ranges
}

// detectNonSilent is the complement of detectSilence. A buffer that is silent
// end to end yields no ranges.
func detectNonSilent(buf *audio.Buffer, e *energy, opts Options) [][2]int {
	n := buf.Len()
	silent := detectSilence(buf, e, opts)
	if len(silent) == 0 {
		return [][2]int{{0, n}}
	}
	if silent[0][0] == 0 && silent[0][1] == n {
		return nil
	}

	var out [][2]int
	prevEnd := 0
	for _, r := range silent {
		if r[0] > prevEnd {
			out = append(out, [2]int{prevEnd, r[0]})
		}
		prevEnd = r[1]
	}
	if prevEnd < n {
		out = append(out, [2]int{prevEnd, n})
	}
	return out
}

// splitRanges pads each non-silent range by KeepSilence, meets overlapping
// neighbours at their midpoint and clamps to the buffer.
func splitRanges(buf *audio.Buffer, opts Options) [][2]int {
	if buf.Len() == 0 {
		return nil
	}
	e := newEnergy(buf.Samples)
	nonSilent := detectNonSilent(buf, e, opts)
	if len(nonSilent) == 0 {
		return nil
	}

	keep := buf.FramesIn(opts.KeepSilence)
	out := make([][2]int, len(nonSilent))
	for i, r := range nonSilent {
		out[i] = [2]int{r[0] - keep, r[1] + keep}
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i+1][0] < out[i][1] {
			mid := (out[i][1] + out[i+1][0]) / 2
			out[i][1] = mid
			out[i+1][0] = mid
		}
	}

	n := buf.Len()
	ranges := out[:0]
	for _, r := range out {
		r[0] = max(r[0], 0)
		r[1] = min(r[1], n)
		if r[1] > r[0] {
			ranges = append(ranges, r)
		}
	}
	return ranges
}
