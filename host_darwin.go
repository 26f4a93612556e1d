package main

import (
	"context"
	"strings"

	"golang.org/x/sys/unix"
)

func platformCPUName(context.Context) string {
	name, err := unix.Sysctl("machdep.cpu.brand_string")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
