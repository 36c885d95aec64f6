package dist

import (
	"math"

	"github.com/pkg/errors"
)

// Pareto draws indices in [0, nranges) from a Pareto distribution
// with shape h in (0, 1), discretized onto the range. Like Zipf, one
// Pareto belongs to one workload stream.
type Pareto struct {
	nranges   uint64
	paretoPow float64
	rand      *Substream
	off       uint64
}

// NewPareto validates the stream parameters and derives the quantile
// exponent from the shape.
func NewPareto(nranges uint64, h float64, offset, seed uint64) (*Pareto, error) {
	if nranges < 1 {
		return nil, errors.New("dist: pareto range needs at least one index")
	}
	if h <= 0 || h >= 1 {
		return nil, errors.Errorf("dist: pareto shape %v out of range (0, 1)", h)
	}
	return &Pareto{
		nranges:   nranges,
		paretoPow: math.Log(h) / math.Log(1.0-h),
		rand:      NewSubstream(seed),
		off:       offset % nranges,
	}, nil
}

// Next returns the next index in [0, nranges): one uniform fraction
// mapped through the quantile function and scaled onto the range.
// The top edge is clamped so floating point spill can never push a
// result out of range; the additive offset wraps at nranges.
func (p *Pareto) Next() uint64 {
	u := p.rand.Fraction()

	val := uint64(float64(p.nranges-1) * math.Pow(u, p.paretoPow))
	if val >= p.nranges {
		val = p.nranges - 1
	}
	return (val + p.off) % p.nranges
}
