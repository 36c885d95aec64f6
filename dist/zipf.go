package dist

import (
	"math"

	"github.com/pkg/errors"
)

// Below this skew the distribution is indistinguishable from uniform
// and the hat inversion loses precision, so sampling falls back to a
// plain uniform draw.
const thetaUniformCutoff = 1e-3

// Zipf draws indices in [0, nranges) with probability mass
// proportional to (rank+1)^-theta. Larger theta concentrates mass
// near index zero; theta near zero approaches uniform. One Zipf
// belongs to one workload stream and is not safe for concurrent use.
type Zipf struct {
	nranges uint64
	theta   float64
	zeta2   float64
	zetan   float64
	rand    *Substream
	off     uint64
}

// zeta sums the truncated generalized zeta series over n terms.
// There is no closed form for the finite sum, so this O(n) pass runs
// once per stream at setup.
func zeta(n uint64, theta float64) float64 {
	var sum float64
	for i := uint64(0); i < n; i++ {
		sum += math.Pow(1.0/float64(i+1), theta)
	}
	return sum
}

// NewZipf validates the stream parameters and precomputes the zeta
// constants the sampler needs. theta == 1 is rejected: the sampler's
// inversion exponent 1/(1-theta) is undefined there (the harmonic
// zeta case).
func NewZipf(nranges uint64, theta float64, offset, seed uint64) (*Zipf, error) {
	if nranges < 1 {
		return nil, errors.New("dist: zipf range needs at least one index")
	}
	if theta <= 0 || theta == 1 {
		return nil, errors.Errorf("dist: zipf theta %v out of range (need theta > 0 and theta != 1)", theta)
	}
	return &Zipf{
		nranges: nranges,
		theta:   theta,
		zeta2:   zeta(2, theta),
		zetan:   zeta(nranges, theta),
		rand:    NewSubstream(seed),
		off:     offset % nranges,
	}, nil
}

// Next returns the next index in [0, nranges). It draws one uniform
// fraction from the stream's substream and inverts the bounding hat
// function (Gray et al.); the two low branches handle the ranks where
// the continuous hat and the discrete mass are matched exactly. The
// stream's additive offset is applied last, wrapping at nranges. For
// a fixed seed the sequence is fully reproducible.
func (z *Zipf) Next() uint64 {
	u := z.rand.Fraction()

	if z.theta < thetaUniformCutoff {
		return (uint64(float64(z.nranges)*u) + z.off) % z.nranges
	}

	var val uint64
	randZ := u * z.zetan
	switch {
	case randZ < 1.0:
		val = 1
	case randZ < 1.0+math.Pow(0.5, z.theta):
		val = 2
	default:
		alpha := 1.0 / (1.0 - z.theta)
		eta := (1.0 - math.Pow(2.0/float64(z.nranges), 1.0-z.theta)) /
			(1.0 - z.zeta2/z.zetan)
		val = 1 + uint64(float64(z.nranges)*math.Pow(eta*u-eta+1.0, alpha))
	}

	return (val - 1 + z.off) % z.nranges
}
