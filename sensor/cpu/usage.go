package cpu

import (
	"context"
	"errors"
	"time"

	pscpu "github.com/shirou/gopsutil/v3/cpu"

	"systemsensors/util"
)

// TimesFunc returns the aggregated CPU times of the host.
type TimesFunc func(ctx context.Context) (pscpu.TimesStat, error)

// Usage reports the share of busy CPU time since the previous run.
// The very first run samples twice, one second apart.
type Usage struct {
	times    TimesFunc
	previous *pscpu.TimesStat
}

func NewCPUUsage() *Usage {
	return &Usage{times: HostTimes}
}

// HostTimes reads the combined times of all CPUs through gopsutil.
func HostTimes(ctx context.Context) (pscpu.TimesStat, error) {
	stats, err := pscpu.TimesWithContext(ctx, false)
	if err != nil {
		return pscpu.TimesStat{}, err
	}
	if len(stats) == 0 {
		return pscpu.TimesStat{}, errors.New("no cpu times reported")
	}
	return stats[0], nil
}

func (c *Usage) Run(ctx context.Context) (string, error) {
	if c.previous == nil {
		first, err := c.times(ctx)
		if err != nil {
			return "", err
		}
		c.previous = &first
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
		}
	}
	current, err := c.times(ctx)
	if err != nil {
		return "", err
	}
	percent := c.process(*c.previous, current)
	c.previous = &current
	return util.FormatDecimals(percent, 1), nil
}

// process counts everything but idle and iowait as busy. Guest time is
// already part of user and nice.
func (c *Usage) process(previous, current pscpu.TimesStat) float64 {
	total := totalTime(current) - totalTime(previous)
	busy := busyTime(current) - busyTime(previous)
	if total <= 0 || busy < 0 {
		return 0
	}
	return util.RoundTo(busy*100/total, 1)
}

func totalTime(t pscpu.TimesStat) float64 {
	return t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func busyTime(t pscpu.TimesStat) float64 {
	return totalTime(t) - t.Idle - t.Iowait
}
