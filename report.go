package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const timestampLayout = "2006-01-02T15:04:05-0700"

// resultSet is built once per run and never mutated afterwards.
type resultSet struct {
	Timestamp   string
	OS          string
	Arch        string
	CPUName     string
	CPUFeatures []string
	Threads     int

	SingleCore phaseResult
	MultiCore  phaseResult
	MemoryBW   phaseResult

	GeometricMean float64
}

func newResultSet(now time.Time, host hostInfo, threads int, single, multi, mem phaseResult) resultSet {
	return resultSet{
		Timestamp:     now.Format(timestampLayout),
		OS:            host.os,
		Arch:          host.arch,
		CPUName:       host.cpuName,
		CPUFeatures:   host.features,
		Threads:       threads,
		SingleCore:    single,
		MultiCore:     multi,
		MemoryBW:      mem,
		GeometricMean: compositeScore(single, multi, mem),
	}
}

// fixed6 serialises with exactly six decimals.
type fixed6 float64

func (f fixed6) String() string {
	return strconv.FormatFloat(float64(f), 'f', 6, 64)
}

func (f fixed6) MarshalJSON() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f fixed6) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: f.String()}, nil
}

type computeDoc struct {
	Seconds fixed6 `json:"seconds" yaml:"seconds"`
	GopsInt fixed6 `json:"gops_int" yaml:"gops_int"`
	GFlops  fixed6 `json:"gflops" yaml:"gflops"`
}

type memoryDoc struct {
	Seconds fixed6 `json:"seconds" yaml:"seconds"`
	GBps    fixed6 `json:"gbps" yaml:"gbps"`
}

// resultDoc is the machine-readable document shared by the JSON and YAML sinks.
type resultDoc struct {
	Timestamp     string     `json:"timestamp" yaml:"timestamp"`
	OS            string     `json:"os" yaml:"os"`
	Arch          string     `json:"arch" yaml:"arch"`
	CPUName       string     `json:"cpu_name" yaml:"cpu_name"`
	Threads       int        `json:"threads" yaml:"threads"`
	SingleCore    computeDoc `json:"single_core" yaml:"single_core"`
	MultiCore     computeDoc `json:"multi_core" yaml:"multi_core"`
	MemoryBW      memoryDoc  `json:"memory_bw" yaml:"memory_bw"`
	GeometricMean fixed6     `json:"geometric_mean" yaml:"geometric_mean"`
}

func (r resultSet) doc() resultDoc {
	compute := func(p phaseResult) computeDoc {
		return computeDoc{Seconds: fixed6(p.Seconds), GopsInt: fixed6(p.GopsInt), GFlops: fixed6(p.GFlops)}
	}
	return resultDoc{
		Timestamp:     r.Timestamp,
		OS:            r.OS,
		Arch:          r.Arch,
		CPUName:       r.CPUName,
		Threads:       r.Threads,
		SingleCore:    compute(r.SingleCore),
		MultiCore:     compute(r.MultiCore),
		MemoryBW:      memoryDoc{Seconds: fixed6(r.MemoryBW.Seconds), GBps: fixed6(r.MemoryBW.GBps)},
		GeometricMean: fixed6(r.GeometricMean),
	}
}

func writeConsole(w io.Writer, r resultSet) {
	fmt.Fprintf(w, "CPU Bench @ %s\n", r.Timestamp)
	fmt.Fprintf(w, "OS: %s | Arch: %s\n", r.OS, r.Arch)
	fmt.Fprintf(w, "CPU: %s\n", color.New(color.FgCyan).Sprint(r.CPUName))
	if len(r.CPUFeatures) > 0 {
		fmt.Fprintf(w, "SIMD: %s\n", strings.Join(r.CPUFeatures, " "))
	}
	fmt.Fprintf(w, "Threads: %d\n\n", r.Threads)

	compute := func(label string, p phaseResult) {
		fmt.Fprintf(w, "[%-11s %.3fs]  Int: %s Gops/s,  FP: %s GFLOP/s  %s\n",
			label, p.Seconds,
			color.GreenString("%.3f", p.GopsInt),
			color.GreenString("%.3f", p.GFlops),
			cpuSummary(p))
	}
	compute("Single-core", r.SingleCore)
	compute("Multi-core", r.MultiCore)
	fmt.Fprintf(w, "[%-11s %.3fs]  BW:  %s GB/s  %s\n\n",
		"Memory", r.MemoryBW.Seconds,
		color.GreenString("%.3f", r.MemoryBW.GBps),
		cpuSummary(r.MemoryBW))

	fmt.Fprintf(w, "Geometric mean (compute+mem): %s\n", color.New(color.Bold).Sprintf("%.3f", r.GeometricMean))
}

func cpuSummary(p phaseResult) string {
	if p.CPU == (cpuTimes{}) {
		return ""
	}
	return color.HiBlackString("[User: %s, System: %s]", formatDuration(p.CPU.user), formatDuration(p.CPU.system))
}

func writeJSON(w io.Writer, r resultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.doc())
}

func writeYAML(w io.Writer, r resultSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.doc()); err != nil {
		return err
	}
	return enc.Close()
}

func writeMarkdown(w io.Writer, r resultSet) error {
	var b strings.Builder
	b.WriteString("# CPU Benchmark Results\n\n")
	fmt.Fprintf(&b, "- **Timestamp:** %s\n", r.Timestamp)
	fmt.Fprintf(&b, "- **OS:** %s   **Arch:** %s\n", r.OS, r.Arch)
	fmt.Fprintf(&b, "- **CPU:** %s\n", r.CPUName)
	fmt.Fprintf(&b, "- **Threads:** %d\n\n", r.Threads)
	b.WriteString("| Test | Duration (s) | Integer (Gops/s) | FP (GFLOP/s) | Memory (GB/s) |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| Single-core | %.3f | %.3f | %.3f | - |\n", r.SingleCore.Seconds, r.SingleCore.GopsInt, r.SingleCore.GFlops)
	fmt.Fprintf(&b, "| Multi-core | %.3f | %.3f | %.3f | - |\n", r.MultiCore.Seconds, r.MultiCore.GopsInt, r.MultiCore.GFlops)
	fmt.Fprintf(&b, "| Memory BW | %.3f | - | - | %.3f |\n\n", r.MemoryBW.Seconds, r.MemoryBW.GBps)
	fmt.Fprintf(&b, "**Geometric mean (compute+mem):** %.3f\n", r.GeometricMean)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSV(w io.Writer, r resultSet) error {
	cw := csv.NewWriter(w)
	f := func(v float64) string { return fixed6(v).String() }
	rows := [][]string{
		{"phase", "seconds", "gops_int", "gflops", "gbps"},
		{"single_core", f(r.SingleCore.Seconds), f(r.SingleCore.GopsInt), f(r.SingleCore.GFlops), ""},
		{"multi_core", f(r.MultiCore.Seconds), f(r.MultiCore.GopsInt), f(r.MultiCore.GFlops), ""},
		{"memory_bw", f(r.MemoryBW.Seconds), "", "", f(r.MemoryBW.GBps)},
		{"geometric_mean", "", "", "", f(r.GeometricMean)},
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// writeFile creates path and hands it to write. A failed write removes the
// file instead of leaving a truncated one behind.
func writeFile(path string, r resultSet, write func(io.Writer, resultSet) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}
