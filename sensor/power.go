package sensor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"systemsensors/util"
)

const (
	hwmonGlob       = "/sys/class/hwmon/hwmon*"
	underVoltageHw  = "rpi_volt"
	underVoltageLog = "in0_lcrit_alarm"
)

// UnderVoltage reports the Raspberry Pi under-voltage alarm as a binary
// sensor ("ON" while the supply voltage is too low).
type UnderVoltage struct {
	// Alarm is the sysfs file of the rpi_volt low-voltage alarm.
	Alarm string
}

func NewUnderVoltage(alarm string) *UnderVoltage {
	return &UnderVoltage{Alarm: alarm}
}

func (pwr UnderVoltage) Run(ctx context.Context) (string, error) {
	b, err := os.ReadFile(pwr.Alarm)
	if err != nil {
		return "", fmt.Errorf("failed to read under-voltage alarm from %s: %w", pwr.Alarm, err)
	}
	state := util.StringToOnOff(string(b))
	if state == "" {
		return "", fmt.Errorf("unexpected under-voltage alarm value %q", strings.TrimSpace(string(b)))
	}
	return state, nil
}

// FindUnderVoltageAlarm looks for the rpi_volt hwmon device below glob
// and returns the path of its alarm file.
func FindUnderVoltageAlarm(glob string) (string, error) {
	if glob == "" {
		glob = hwmonGlob
	}
	dirs, err := filepath.Glob(glob)
	if err != nil {
		return "", err
	}
	for _, dir := range dirs {
		name, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil || strings.TrimSpace(string(name)) != underVoltageHw {
			continue
		}
		alarm := filepath.Join(dir, underVoltageLog)
		if exists, _ := util.FileExists(alarm); exists {
			return alarm, nil
		}
	}
	return "", fmt.Errorf("no %s hwmon device found", underVoltageHw)
}
