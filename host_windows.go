package main

import (
	"context"

	"golang.org/x/sys/windows/registry"
)

const processorKey = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`

func platformCPUName(context.Context) string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, processorKey, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	name, _, err := k.GetStringValue("ProcessorNameString")
	if err != nil {
		return ""
	}
	return collapseSpaces(name)
}
