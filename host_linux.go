package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
)

func platformCPUName(ctx context.Context) string {
	if f, err := os.Open("/proc/cpuinfo"); err == nil {
		defer f.Close()
		if n := parseCPUInfo(f); n != "" {
			return n
		}
	}
	return parseLscpu(runCmd(ctx, "lscpu"))
}

// parseCPUInfo prefers "model name" and falls back to the "Hardware" line
// that ARM kernels print instead.
func parseCPUInfo(r io.Reader) string {
	var hardware string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "model name":
			if v := strings.TrimSpace(val); v != "" {
				return v
			}
		case "Hardware":
			if hardware == "" {
				hardware = strings.TrimSpace(val)
			}
		}
	}
	return hardware
}

func parseLscpu(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if key, val, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(key) == "Model name" {
			return collapseSpaces(val)
		}
	}
	return ""
}
