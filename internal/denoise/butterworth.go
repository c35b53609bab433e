package denoise

import (
	"fmt"
	"math"
	"math/cmplx"
)

// biquad is one second-order IIR section in direct form II transposed.
// a0 is normalized to 1.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// response evaluates the section's transfer function at z.
func (q biquad) response(z complex128) complex128 {
	zi := 1 / z
	num := complex(q.b0, 0) + complex(q.b1, 0)*zi + complex(q.b2, 0)*zi*zi
	den := 1 + complex(q.a1, 0)*zi + complex(q.a2, 0)*zi*zi
	return num / den
}

// designBandpass returns the second-order sections of a digital Butterworth
// bandpass whose lowpass prototype has the given order. The band edges are
// prewarped, the analog poles mapped through the bilinear transform and the
// cascade normalized to unit gain at the geometric centre of the band.
func designBandpass(order int, lowHz, highHz float64, sampleRate int) ([]biquad, error) {
	fs := float64(sampleRate)
	nyquist := fs / 2
	if order <= 0 {
		return nil, fmt.Errorf("order must be positive, got %d", order)
	}
	if lowHz <= 0 || highHz <= lowHz || highHz >= nyquist {
		return nil, fmt.Errorf("band %.0f-%.0f Hz invalid for nyquist %.0f Hz", lowHz, highHz, nyquist)
	}

	// Normalized against Nyquist, then prewarped.
	wl := 2 * fs * math.Tan(math.Pi*(lowHz/nyquist)/2)
	wh := 2 * fs * math.Tan(math.Pi*(highHz/nyquist)/2)
	bw := wh - wl
	w0sq := wl * wh

	var upper []complex128
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		p := cmplx.Exp(complex(0, theta)) // left half-plane prototype pole

		pb := p * complex(bw/2, 0)
		d := cmplx.Sqrt(pb*pb - complex(w0sq, 0))
		for _, s := range []complex128{pb + d, pb - d} {
			z := (complex(2*fs, 0) + s) / (complex(2*fs, 0) - s)
			if imag(z) > 0 {
				upper = append(upper, z)
			}
		}
	}
	if len(upper) != order {
		return nil, fmt.Errorf("degenerate pole layout: %d sections for order %d", len(upper), order)
	}

	sections := make([]biquad, 0, order)
	for _, z := range upper {
		// One zero at z=1 and one at z=-1 per section.
		sections = append(sections, biquad{
			b0: 1, b1: 0, b2: -1,
			a1: -2 * real(z),
			a2: real(z)*real(z) + imag(z)*imag(z),
		})
	}

	centre := 2 * math.Atan(math.Sqrt(w0sq)/(2*fs))
	zc := cmplx.Exp(complex(0, centre))
	gain := complex(1, 0)
	for _, s := range sections {
		gain *= s.response(zc)
	}
	mag := cmplx.Abs(gain)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return nil, fmt.Errorf("degenerate filter gain %v", mag)
	}

	// Spread the normalization evenly so no single section over- or
	// under-flows.
	g := math.Pow(mag, -1/float64(order))
	for i := range sections {
		sections[i].b0 *= g
		sections[i].b2 *= g
	}
	return sections, nil
}

// filter runs x through the cascade, starting from zero state.
func filter(sections []biquad, x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	for _, s := range sections {
		var z1, z2 float64
		for i, in := range y {
			out := s.b0*in + z1
			z1 = s.b1*in - s.a1*out + z2
			z2 = s.b2*in - s.a2*out
			y[i] = out
		}
	}
	return y
}
