package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunConfig_SplitsTotal(t *testing.T) {
	cfg := newRunConfig(3, 0, 0, 0, 2)

	assert.Equal(t, 1.2, cfg.single)
	assert.Equal(t, 1.2, cfg.multi)
	assert.Equal(t, 0.6, cfg.mem)
	assert.Equal(t, 2, cfg.threads)
	assert.InDelta(t, 3.0, cfg.total(), 1e-12)
}

func TestNewRunConfig_Overrides(t *testing.T) {
	cfg := newRunConfig(30, 1, 1, 1, 4)

	assert.Equal(t, 1.0, cfg.single)
	assert.Equal(t, 1.0, cfg.multi)
	assert.Equal(t, 1.0, cfg.mem)
	assert.Equal(t, 4, cfg.threads)
}

func TestNewRunConfig_NonPositiveOverrideIsDerived(t *testing.T) {
	cfg := newRunConfig(10, -1, 0, 2.5, 1)

	assert.Equal(t, 4.0, cfg.single)
	assert.Equal(t, 4.0, cfg.multi)
	assert.Equal(t, 2.5, cfg.mem)
}

func TestNewRunConfig_DefaultThreads(t *testing.T) {
	assert.Equal(t, max(runtime.NumCPU(), 1), newRunConfig(30, 0, 0, 0, 0).threads)
	assert.Equal(t, max(runtime.NumCPU(), 1), newRunConfig(30, 0, 0, 0, -2).threads)
}

func TestParseLeadingFloat(t *testing.T) {
	tests := map[string]float64{
		"3":     3,
		" 2.5 ": 2.5,
		"1.5s":  1.5,
		"1e3x":  1000,
		"-2":    -2,
		"abc":   0,
		"":      0,
		"nan":   0,
		"inf":   0,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLeadingFloat(in), "input %q", in)
	}
}

func TestParseLeadingUint(t *testing.T) {
	tests := map[string]uint64{
		"4":   4,
		"+2":  2,
		"16x": 16,
		"x":   0,
		"-3":  0,
		"":    0,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLeadingUint(in), "input %q", in)
	}
}

func TestLenientValuesNeverFail(t *testing.T) {
	var f lenientFloat
	require.NoError(t, f.Set("garbage"))
	assert.Equal(t, "0", f.String())
	require.NoError(t, f.Set("1.25"))
	assert.Equal(t, "1.25", f.String())

	var u lenientUint
	require.NoError(t, u.Set("eight"))
	assert.Equal(t, "0", u.String())
	require.NoError(t, u.Set("8"))
	assert.Equal(t, "8", u.String())
}

func parseOptions(t *testing.T, cfgFile string, args ...string) options {
	t.Helper()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	opts, err := loadOptions(viper.New(), cmd.Flags(), cfgFile)
	require.NoError(t, err)
	return opts
}

func TestLoadOptions_TimeAndThreads(t *testing.T) {
	opts := parseOptions(t, "", "--time", "3", "--threads", "2")

	assert.Equal(t, 1.2, opts.run.single)
	assert.Equal(t, 1.2, opts.run.multi)
	assert.Equal(t, 0.6, opts.run.mem)
	assert.Equal(t, 2, opts.run.threads)
}

func TestLoadOptions_ExplicitOverrides(t *testing.T) {
	opts := parseOptions(t, "", "--single", "1", "--multi", "1", "--mem", "1", "--threads", "4")

	assert.Equal(t, 1.0, opts.run.single)
	assert.Equal(t, 1.0, opts.run.multi)
	assert.Equal(t, 1.0, opts.run.mem)
	assert.Equal(t, 4, opts.run.threads)
}

func TestLoadOptions_Defaults(t *testing.T) {
	opts := parseOptions(t, "")

	assert.Equal(t, 12.0, opts.run.single)
	assert.Equal(t, 12.0, opts.run.multi)
	assert.Equal(t, 6.0, opts.run.mem)
	assert.Empty(t, opts.jsonPath)
	assert.Empty(t, opts.mdPath)
	assert.False(t, opts.verbose)
}

func TestLoadOptions_MalformedNumbersDegrade(t *testing.T) {
	opts := parseOptions(t, "", "--time", "soon", "--threads", "many", "--mem", "2s")

	assert.Zero(t, opts.run.single)
	assert.Zero(t, opts.run.multi)
	assert.Equal(t, 2.0, opts.run.mem)
	assert.Equal(t, max(runtime.NumCPU(), 1), opts.run.threads)
}

func TestLoadOptions_UnknownFlagsIgnored(t *testing.T) {
	opts := parseOptions(t, "", "--bogus", "--time", "5")
	assert.Equal(t, 2.0, opts.run.single)
}

func TestLoadOptions_Environment(t *testing.T) {
	t.Setenv("SEINOU_THREADS", "3")
	t.Setenv("SEINOU_TIME", "10")
	t.Setenv("SEINOU_JSON", "out.json")

	opts := parseOptions(t, "")
	assert.Equal(t, 3, opts.run.threads)
	assert.Equal(t, 4.0, opts.run.single)
	assert.Equal(t, "out.json", opts.jsonPath)

	opts = parseOptions(t, "", "--threads", "5")
	assert.Equal(t, 5, opts.run.threads, "flags win over the environment")
}

func TestLoadOptions_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seinou.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time: 5\nthreads: 6\nmd: report.md\n"), 0o644))

	opts := parseOptions(t, path)
	assert.Equal(t, 2.0, opts.run.single)
	assert.Equal(t, 1.0, opts.run.mem)
	assert.Equal(t, 6, opts.run.threads)
	assert.Equal(t, "report.md", opts.mdPath)
}

func TestLoadOptions_MissingConfigFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	_, err := loadOptions(viper.New(), cmd.Flags(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
