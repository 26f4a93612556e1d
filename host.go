package main

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
)

const cmdTimeout = 5 * time.Second

type hostInfo struct {
	os       string
	arch     string
	cpuName  string
	features []string
}

var simdFeatures = []cpuid.FeatureID{
	cpuid.SSE2, cpuid.SSE42, cpuid.AVX, cpuid.AVX2, cpuid.FMA3, cpuid.AVX512F,
	cpuid.ASIMD, cpuid.SVE,
}

// detectHost is called once at startup.
func detectHost(ctx context.Context) hostInfo {
	h := hostInfo{
		os:      osName(runtime.GOOS),
		arch:    archName(runtime.GOARCH),
		cpuName: cpuName(ctx),
	}
	for _, f := range simdFeatures {
		if cpuid.CPU.Supports(f) {
			h.features = append(h.features, f.String())
		}
	}
	return h
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	default:
		return "Unknown"
	}
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "x86"
	default:
		return "Unknown"
	}
}

func cpuName(ctx context.Context) string {
	if n := strings.TrimSpace(cpuid.CPU.BrandName); n != "" {
		return n
	}
	if n := platformCPUName(ctx); n != "" {
		return n
	}
	return fallbackCPUName(runtime.GOOS)
}

func fallbackCPUName(goos string) string {
	switch goos {
	case "windows":
		return "Windows CPU"
	case "darwin":
		return "Apple CPU"
	case "linux":
		return "Linux CPU"
	default:
		return "Unknown CPU"
	}
}

// runCmd returns the trimmed stdout of a command, or "" if it fails.
func runCmd(ctx context.Context, name string, args ...string) string {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// collapseSpaces squeezes runs of whitespace into a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
