package cpu

import (
	"context"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"systemsensors/util"
)

var (
	reDecimal = regexp.MustCompile(`\d+\.\d+`)
	reInteger = regexp.MustCompile(`\d+`)
)

const (
	thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"
	scalingFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"
)

// Temp reads the SoC temperature in °C. On Raspberry Pi OS the firmware
// is queried through vcgencmd, everywhere else the first thermal zone
// is read.
type Temp struct {
	Raspberry bool
	zonePath  string
}

func NewCPUTemp(raspberry bool) *Temp {
	return &Temp{Raspberry: raspberry, zonePath: thermalZonePath}
}

func (c Temp) Run(ctx context.Context) (string, error) {
	if c.Raspberry {
		out, err := util.Command(ctx, "vcgencmd", "measure_temp")
		if err != nil {
			return "", err
		}
		return c.processVcgencmd(out)
	}
	b, err := os.ReadFile(c.zonePath)
	if err != nil {
		return "", err
	}
	return c.processThermalZone(string(b))
}

// processVcgencmd parses output like "temp=48.3'C".
func (c Temp) processVcgencmd(output string) (string, error) {
	match := reDecimal.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse temperature out of vcgencmd output: %q", output)
	}
	return match, nil
}

// processThermalZone converts millidegrees to degrees with one decimal.
func (c Temp) processThermalZone(output string) (string, error) {
	milli, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse thermal zone temperature %q: %w", output, err)
	}
	return util.FormatDecimals(math.Trunc(milli/100)/10, 1), nil
}

// ClockSpeed reads the current ARM/CPU0 clock in MHz.
type ClockSpeed struct {
	Raspberry bool
	freqPath  string
}

func NewClockSpeed(raspberry bool) *ClockSpeed {
	return &ClockSpeed{Raspberry: raspberry, freqPath: scalingFreqPath}
}

func (c ClockSpeed) Run(ctx context.Context) (string, error) {
	if c.Raspberry {
		out, err := util.Command(ctx, "vcgencmd", "measure_clock", "arm")
		if err != nil {
			return "", err
		}
		return c.processVcgencmd(out)
	}
	b, err := os.ReadFile(c.freqPath)
	if err != nil {
		return "", err
	}
	return c.processScalingFreq(string(b))
}

// processVcgencmd parses output like "frequency(48)=1500345728" (Hz).
func (c ClockSpeed) processVcgencmd(output string) (string, error) {
	matches := reInteger.FindAllString(output, 2)
	if len(matches) < 2 {
		return "", fmt.Errorf("failed to parse clock speed out of vcgencmd output: %q", output)
	}
	hz, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(hz/1e6, 'f', -1, 64), nil
}

// processScalingFreq parses the cpufreq value (kHz).
func (c ClockSpeed) processScalingFreq(output string) (string, error) {
	match := reInteger.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse clock speed out of %q", output)
	}
	khz, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(khz/1000, 'f', -1, 64), nil
}
