// Package bench binds the clock and the skewed generators into
// workload streams: pick a target index, perform the operation,
// timestamp the completion.
package bench

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Distribution names accepted in a stream configuration.
const (
	ZipfDist   = "zipf"
	ParetoDist = "pareto"
)

type (
	// StreamConfig describes one workload stream.
	StreamConfig struct {
		Name string

		// Distribution is "zipf" or "pareto".
		Distribution string

		// Nranges is how many target offsets the stream draws from.
		Nranges uint64

		// Theta is the zipf skew; unused for pareto.
		Theta float64

		// Shape is the pareto shape in (0, 1); unused for zipf.
		Shape float64

		// Offset shifts every sampled index, wrapping at Nranges.
		Offset uint64

		// Seed fixes the stream's substream; equal seeds with equal
		// parameters reproduce the exact index sequence.
		Seed uint64

		// Ops is how many operations the stream performs per run.
		Ops int
	}

	Config struct {
		ClockSource string
		Streams     []StreamConfig
	}
)

// LoadConfig reads a JSON benchmark configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "bench: read config")
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "bench: parse config %s", path)
	}
	return cfg, nil
}
