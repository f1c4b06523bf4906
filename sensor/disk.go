package sensor

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"

	"systemsensors/util"
)

// DiskUsage reports the used percentage of the filesystem mounted at Path.
// Each configured drive gets its own DiskUsage value.
type DiskUsage struct {
	Path string
}

func NewDiskUsage(path string) *DiskUsage {
	return &DiskUsage{Path: path}
}

func (d DiskUsage) Run(ctx context.Context) (string, error) {
	usage, err := disk.UsageWithContext(ctx, d.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read disk usage of %s: %w", d.Path, err)
	}
	return util.FormatDecimals(util.RoundTo(usage.UsedPercent, 1), 1), nil
}
