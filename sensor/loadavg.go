package sensor

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadAVG reports one of the 1, 5 or 15 minute load averages.
type LoadAVG struct {
	// Index selects the average: 0 = 1m, 1 = 5m, 2 = 15m.
	Index int
	path  string
}

func NewLoadAVG(index int) *LoadAVG {
	return &LoadAVG{Index: index, path: "/proc/loadavg"}
}

func (w LoadAVG) Run(ctx context.Context) (string, error) {
	b, err := os.ReadFile(w.path)
	if err != nil {
		return "", err
	}
	return w.process(string(b))
}

func (w LoadAVG) process(output string) (string, error) {
	if w.Index < 0 || w.Index > 2 {
		return "", fmt.Errorf("invalid load average index %d", w.Index)
	}
	parts := strings.Fields(output)
	if len(parts) < 3 {
		return "", fmt.Errorf("expected at least 3 values from /proc/loadavg, got only %d: %s", len(parts), output)
	}
	load, err := strconv.ParseFloat(parts[w.Index], 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse loadavg %s: %w", parts[w.Index], err)
	}
	return strconv.FormatFloat(load, 'f', -1, 64), nil
}
