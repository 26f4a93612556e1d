package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SEINOU"

// Shares of the total budget, in percent.
const (
	singleShare = 40
	multiShare  = 40
	memShare    = 20
)

// runConfig is resolved once and then only read.
type runConfig struct {
	single  float64
	multi   float64
	mem     float64
	threads int
}

// newRunConfig gives each phase its override when positive, otherwise its
// share of total. threads 0 means the hardware thread count.
func newRunConfig(total, single, multi, mem float64, threads int) runConfig {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return runConfig{
		single:  phaseSeconds(single, total, singleShare),
		multi:   phaseSeconds(multi, total, multiShare),
		mem:     phaseSeconds(mem, total, memShare),
		threads: coerceThreads(threads),
	}
}

func phaseSeconds(override, total float64, share int) float64 {
	override, total = finite(override), finite(total)
	if override > 0 {
		return override
	}
	return total * float64(share) / 100
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (c runConfig) total() float64 {
	return c.single + c.multi + c.mem
}

type options struct {
	run runConfig

	jsonPath string
	mdPath   string
	yamlPath string
	csvPath  string
	promPath string

	verbose    bool
	noColor    bool
	noProgress bool
}

// loadOptions merges flags, SEINOU_* environment, an optional .env and an
// optional config file, in that order of precedence.
func loadOptions(v *viper.Viper, flags *pflag.FlagSet, cfgFile string) (options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring .env", "err", err)
	}

	if err := v.BindPFlags(flags); err != nil {
		return options{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return options{}, err
		}
	}

	return options{
		run: newRunConfig(
			v.GetFloat64("time"),
			v.GetFloat64("single"),
			v.GetFloat64("multi"),
			v.GetFloat64("mem"),
			v.GetInt("threads"),
		),
		jsonPath:   v.GetString("json"),
		mdPath:     v.GetString("md"),
		yamlPath:   v.GetString("yaml"),
		csvPath:    v.GetString("csv"),
		promPath:   v.GetString("prom"),
		verbose:    v.GetBool("verbose"),
		noColor:    v.GetBool("no-color"),
		noProgress: v.GetBool("no-progress"),
	}, nil
}

// lenientFloat accepts anything. The longest numeric prefix is used and
// input without one reads as zero.
type lenientFloat float64

func (f *lenientFloat) String() string { return strconv.FormatFloat(float64(*f), 'g', -1, 64) }

func (f *lenientFloat) Set(s string) error {
	*f = lenientFloat(parseLeadingFloat(s))
	return nil
}

func (f *lenientFloat) Type() string { return "float64" }

// lenientUint is the unsigned counterpart; negative input reads as zero.
type lenientUint uint

func (u *lenientUint) String() string { return strconv.FormatUint(uint64(*u), 10) }

func (u *lenientUint) Set(s string) error {
	*u = lenientUint(parseLeadingUint(s))
	return nil
}

func (u *lenientUint) Type() string { return "uint" }

func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			continue
		}
		// A phase bounded by NaN or Inf would never end.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

func parseLeadingUint(s string) uint64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
