// Package env supplies environment-variable defaults for the
// benchmark configuration; command-line flags override them.
package env

import "os"

var (
	BenchClockSource = GetEnv("IOBENCH_CLOCKSOURCE", "auto")
	BenchFixedUsec   = GetEnv("IOBENCH_FIXED_USEC", "")
	BenchConfigFile  = GetEnv("IOBENCH_CONFIG_FILE", "")
)

func GetEnv(name, defval string) string {
	if r := os.Getenv(name); r != "" {
		return r
	}
	return defval
}
