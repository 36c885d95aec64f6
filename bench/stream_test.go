package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstep/storage-benchmarks/clock"
)

func fixedClock(t *testing.T) *clock.Clock {
	t.Helper()
	fixed := clock.Time{Sec: 100, Usec: 0}
	c, err := clock.New(clock.Config{Source: clock.Nanotime, Fixed: &fixed})
	require.NoError(t, err)
	return c
}

func TestNewStreamRejectsBadConfig(t *testing.T) {
	clk := fixedClock(t)

	_, err := NewStream(StreamConfig{Name: "x", Distribution: "bell-curve", Nranges: 10}, clk)
	assert.Error(t, err)

	_, err = NewStream(StreamConfig{Name: "x", Distribution: ZipfDist, Nranges: 10, Theta: 1.0}, clk)
	assert.Error(t, err)

	_, err = NewStream(StreamConfig{Name: "x", Distribution: ParetoDist, Nranges: 0, Shape: 0.5}, clk)
	assert.Error(t, err)
}

func TestStreamRunIsDeterministic(t *testing.T) {
	cfg := StreamConfig{
		Name:         "zipf-repro",
		Distribution: ZipfDist,
		Nranges:      512,
		Theta:        1.2,
		Seed:         7,
		Ops:          2000,
	}

	runOnce := func() []uint64 {
		clk := fixedClock(t)
		s, err := NewStream(cfg, clk)
		require.NoError(t, err)

		var indices []uint64
		res, err := s.Run(func(index uint64) error {
			indices = append(indices, index)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, cfg.Ops, res.Ops)
		assert.Equal(t, cfg.Ops, res.Latencies.Count())
		return indices
	}

	first := runOnce()
	second := runOnce()
	assert.Equal(t, first, second)

	for _, idx := range first {
		assert.Less(t, idx, cfg.Nranges)
	}
}

func TestStreamRunPropagatesOpError(t *testing.T) {
	clk := fixedClock(t)
	s, err := NewStream(StreamConfig{
		Name:         "failing",
		Distribution: ParetoDist,
		Nranges:      100,
		Shape:        0.5,
		Seed:         1,
		Ops:          10,
	}, clk)
	require.NoError(t, err)

	boom := func(uint64) error { return assert.AnError }
	_, err = s.Run(boom)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"ClockSource": "nanotime",
		"Streams": [
			{"Name": "hot", "Distribution": "zipf", "Nranges": 1024, "Theta": 1.2, "Seed": 3, "Ops": 100},
			{"Name": "tail", "Distribution": "pareto", "Nranges": 1024, "Shape": 0.5, "Seed": 4, "Ops": 100}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "nanotime", cfg.ClockSource)
	require.Len(t, cfg.Streams, 2)
	assert.Equal(t, uint64(1024), cfg.Streams[0].Nranges)
	assert.Equal(t, 0.5, cfg.Streams[1].Shape)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
