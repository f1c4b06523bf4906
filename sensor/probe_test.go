package sensor

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"systemsensors/entity"
)

func TestHostProbe(t *testing.T) {
	lookups := map[string]int{}
	p := NewHostProbe()
	p.lookPath = func(file string) (string, error) {
		lookups[file]++
		if file == "apt-get" {
			return "/usr/bin/apt-get", nil
		}
		return "", exec.ErrNotFound
	}
	p.findVolt = func(string) (string, error) {
		return "/sys/class/hwmon/hwmon1/in0_lcrit_alarm", nil
	}

	require.True(t, p.Probe(entity.CapabilityNone).Available)
	require.True(t, p.Probe(entity.CapabilityUpdates).Available)

	smart := p.Probe(entity.CapabilitySmart)
	require.False(t, smart.Available)
	require.Contains(t, smart.Reason, "smartctl")

	require.True(t, p.Probe(entity.CapabilityUnderVoltage).Available)
	require.Equal(t, "/sys/class/hwmon/hwmon1/in0_lcrit_alarm", p.UnderVoltageAlarm())

	require.False(t, p.Probe(entity.Capability("gpu")).Available)

	// Results are cached.
	p.Probe(entity.CapabilitySmart)
	p.Probe(entity.CapabilityUpdates)
	require.Equal(t, 1, lookups["smartctl"])
	require.Equal(t, 1, lookups["apt-get"])
}

func TestHostProbe_NoUnderVoltage(t *testing.T) {
	p := NewHostProbe()
	p.findVolt = func(string) (string, error) { return "", errors.New("no rpi_volt hwmon device found") }

	res := p.Probe(entity.CapabilityUnderVoltage)
	require.False(t, res.Available)
	require.Empty(t, p.UnderVoltageAlarm())
}
