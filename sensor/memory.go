package sensor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"systemsensors/util"
)

var reMemory = regexp.MustCompile(`(?mi)^\s?(?P<name>[^:]+):\s+(?P<value>\d+)`)

// Memory reports RAM or swap usage in percent, based on /proc/meminfo.
type Memory struct {
	Swap bool
	path string
}

func NewMemory() *Memory {
	return &Memory{path: "/proc/meminfo"}
}

func NewSwap() *Memory {
	return &Memory{Swap: true, path: "/proc/meminfo"}
}

func (m Memory) Run(ctx context.Context) (string, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return "", err
	}
	percent, err := m.process(string(b))
	if err != nil {
		return "", err
	}
	return util.FormatDecimals(percent, 1), nil
}

func (m Memory) process(output string) (float64, error) {
	values := make(map[string]float64)
	matches := reMemory.FindAllStringSubmatch(output, -1)
	for _, match := range matches {
		if len(match) != 3 {
			continue
		}
		kb, err := strconv.Atoi(strings.TrimSpace(match[2]))
		if err != nil {
			continue
		}
		values[strings.TrimSpace(match[1])] = float64(kb)
	}
	if m.Swap {
		total, ok := values["SwapTotal"]
		if !ok {
			return 0, fmt.Errorf("could not determine swap usage based on /proc/meminfo: %s", output)
		}
		if total == 0 {
			return 0, nil
		}
		return util.RoundTo((total-values["SwapFree"])*100/total, 1), nil
	}
	total, ok := values["MemTotal"]
	if !ok || total == 0 {
		return 0, fmt.Errorf("could not determine memory usage based on /proc/meminfo: %s", output)
	}
	available, ok := values["MemAvailable"]
	if !ok {
		// Kernels before 3.14 do not export MemAvailable.
		available = values["MemFree"] + values["Buffers"] + values["Cached"]
	}
	return util.RoundTo((total-available)*100/total, 1), nil
}
