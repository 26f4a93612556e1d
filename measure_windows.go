//go:build windows

package main

import (
	"time"

	"golang.org/x/sys/windows"
)

// FILETIME durations are counted in 100ns ticks.
const HundredNSTicks = 100

type windowsClock struct{}

func init() {
	processClock = windowsClock{}
}

func (windowsClock) Now() (cpuTimes, error) {
	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(windows.CurrentProcess(), &creation, &exit, &kernel, &user); err != nil {
		return cpuTimes{}, err
	}
	return cpuTimes{
		user:   filetimeDuration(user),
		system: filetimeDuration(kernel),
	}, nil
}

// filetimeDuration reads a FILETIME as a span, not as a point since 1601.
func filetimeDuration(ft windows.Filetime) time.Duration {
	ticks := int64(ft.HighDateTime)<<32 | int64(ft.LowDateTime)
	return time.Duration(ticks * HundredNSTicks)
}
