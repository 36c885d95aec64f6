package bench

import (
	"github.com/golang/glog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/lightstep/storage-benchmarks/clock"
	"github.com/lightstep/storage-benchmarks/common"
	"github.com/lightstep/storage-benchmarks/dist"
)

// A Sampler yields the next target index for a stream.
type Sampler interface {
	Next() uint64
}

// A Stream owns one sampler and one substream and drives the measured
// loop. Streams are not safe for concurrent use: each belongs to
// exactly one worker, which is what lets the sampler state go
// unlocked.
type Stream struct {
	cfg     StreamConfig
	sampler Sampler
	clk     *clock.Clock
}

// NewStream builds the configured sampler. Parameter problems
// surface here, at stream setup, never during sampling.
func NewStream(cfg StreamConfig, clk *clock.Clock) (*Stream, error) {
	var (
		sampler Sampler
		err     error
	)
	switch cfg.Distribution {
	case ZipfDist:
		sampler, err = dist.NewZipf(cfg.Nranges, cfg.Theta, cfg.Offset, cfg.Seed)
	case ParetoDist:
		sampler, err = dist.NewPareto(cfg.Nranges, cfg.Shape, cfg.Offset, cfg.Seed)
	default:
		err = errors.Errorf("bench: unknown distribution %q", cfg.Distribution)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "bench: stream %s", cfg.Name)
	}
	return &Stream{cfg: cfg, sampler: sampler, clk: clk}, nil
}

// Result carries one stream run's measurements.
type Result struct {
	Name string
	Ops  int

	// Latencies holds one sample per operation, in microseconds.
	Latencies common.Stats
}

// Run draws cfg.Ops indices, invokes op for each and records its
// latency. A failing op aborts the run; measurement integrity beats
// completeness.
func (s *Stream) Run(op func(index uint64) error) (*Result, error) {
	span := opentracing.StartSpan("bench.stream")
	span.SetTag("stream", s.cfg.Name)
	span.SetTag("distribution", s.cfg.Distribution)
	defer span.Finish()

	res := &Result{Name: s.cfg.Name}
	for i := 0; i < s.cfg.Ops; i++ {
		index := s.sampler.Next()
		start := s.clk.Now()
		if err := op(index); err != nil {
			return nil, errors.Wrapf(err, "bench: stream %s op %d index %d", s.cfg.Name, i, index)
		}
		res.Latencies.Update(float64(s.clk.MicrosSince(start)))
		res.Ops++
	}

	glog.V(1).Infof("stream %s: %d ops, mean latency %.1fus", s.cfg.Name, res.Ops, res.Latencies.Mean())
	return res, nil
}
