package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "▒"

	progressInterval = 250 * time.Millisecond
	fallbackWidth    = 80
)

var denominators = []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}
var units = []string{"h", "m", "s", "ms", "µs", "ns"}

// formatDuration picks the largest unit the value reaches.
func formatDuration(d time.Duration) string {
	for i, denominator := range denominators {
		if d/denominator > 0 {
			return fmt.Sprintf("%.2f %s", float64(d)/float64(denominator), units[i])
		}
	}
	return "0.00 s"
}

func formatETA(eta time.Duration) string {
	if eta < 0 {
		eta = 0
	}
	s := int64(eta.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

func clearCurrentTerminalLine(w io.Writer) {
	w.Write([]byte("\r\033[K"))
}

func printProgressLine(w io.Writer, fd int, line string, progress float64, eta time.Duration) {
	terminalWidth, _, err := term.GetSize(fd)
	if err != nil || terminalWidth <= 0 {
		terminalWidth = fallbackWidth
	}
	barWidth := max(terminalWidth-len(line)-2-12, 10)
	progress = math.Min(math.Max(progress, 0), 1)
	progressChunks := int(progress * float64(barWidth))
	progressLine := strings.Repeat(progressDoneRune, progressChunks)
	progressLine += strings.Repeat(progressPendingRune, barWidth-progressChunks)

	fmt.Fprintf(w, "\r%s %s ETA %s", line, progressLine, formatETA(eta))
}

// progress redraws a single status line while phases run. The ETA covers
// the whole run, not only the current phase.
type progress struct {
	w       io.Writer
	fd      int
	enabled bool

	total float64
	done  float64
}

func newProgress(w io.Writer, fd int, enabled bool, total float64) *progress {
	return &progress{w: w, fd: fd, enabled: enabled, total: total}
}

func (p *progress) track(label string, seconds float64, fn func() phaseResult) phaseResult {
	defer func() { p.done += seconds }()
	if !p.enabled {
		return fn()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				elapsed := math.Min(time.Since(start).Seconds(), seconds)
				frac := 1.0
				if seconds > 0 {
					frac = elapsed / seconds
				}
				left := p.total - p.done - elapsed
				clearCurrentTerminalLine(p.w)
				printProgressLine(p.w, p.fd, label, frac, time.Duration(left*float64(time.Second)))
			}
		}
	}()

	r := fn()
	close(stop)
	wg.Wait()
	clearCurrentTerminalLine(p.w)
	return r
}
