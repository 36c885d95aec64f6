// iobench runs the synthetic benchmark streams described by a JSON
// configuration and prints a latency summary per stream.
package main

import (
	goflag "flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lightstep/storage-benchmarks/bench"
	"github.com/lightstep/storage-benchmarks/clock"
	"github.com/lightstep/storage-benchmarks/common"
	"github.com/lightstep/storage-benchmarks/env"
)

var (
	configFile  string
	clockSource string
	fixedUsec   string
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "iobench",
		Short:         "Storage benchmark driver: skewed offset streams with calibrated latency timing",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", env.BenchConfigFile, "JSON benchmark configuration")
	cmd.Flags().StringVar(&clockSource, "clocksource", env.BenchClockSource, "clock source: auto, gtod, nanotime, cpu")
	cmd.Flags().StringVar(&fixedUsec, "fixed-usec", env.BenchFixedUsec, "fixed timestamp in usec for reproducible runs")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		return fmt.Errorf("no configuration given (--config or IOBENCH_CONFIG_FILE)")
	}
	cfg, err := bench.LoadConfig(configFile)
	if err != nil {
		return err
	}

	// Flag wins, then the config file, then auto.
	name := clockSource
	if name == "auto" && cfg.ClockSource != "" {
		name = cfg.ClockSource
	}
	source, err := clock.ParseSource(name)
	if err != nil {
		return err
	}

	clockCfg := clock.Config{Source: source}
	if fixedUsec != "" {
		usec, err := strconv.ParseUint(fixedUsec, 10, 64)
		if err != nil {
			return fmt.Errorf("bad --fixed-usec %q: %v", fixedUsec, err)
		}
		clockCfg.Fixed = &clock.Time{Sec: int64(usec / 1e6), Usec: int64(usec % 1e6)}
	}
	clk, err := clock.New(clockCfg)
	if err != nil {
		return err
	}
	glog.Infof("clock source: %v", clk.Source())

	for _, sc := range cfg.Streams {
		stream, err := bench.NewStream(sc, clk)
		if err != nil {
			return err
		}

		// A stand-in operation: touch one byte per drawn offset.
		// Real I/O engines plug in here.
		buf := make([]byte, sc.Nranges)
		res, err := stream.Run(func(index uint64) error {
			buf[index]++
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("%-16s %8d ops  latency(us): %v\n",
			res.Name, res.Ops, res.Latencies.Summarize(common.C95))
	}
	return nil
}

func main() {
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine) // glog's -v and friends
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "iobench:", err)
		os.Exit(1)
	}
}
