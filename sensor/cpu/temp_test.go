package cpu

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCPUTemp_Raspberry(t *testing.T) {
	c := NewCPUTemp(true)

	res, err := c.processVcgencmd("temp=48.3'C\n")
	require.NoError(t, err)
	require.Equal(t, "48.3", res)

	_, err = c.processVcgencmd("VCHI initialization failed")
	require.Error(t, err)
}

func TestCPUTemp_ThermalZone(t *testing.T) {
	c := NewCPUTemp(false)

	res, err := c.processThermalZone("48312\n")
	require.NoError(t, err)
	require.Equal(t, "48.3", res)

	res, err = c.processThermalZone("102950")
	require.NoError(t, err)
	require.Equal(t, "102.9", res)

	_, err = c.processThermalZone("")
	require.Error(t, err)
}

func TestCPUTemp_Run(t *testing.T) {
	zone := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(zone, []byte("51000\n"), 0o600))

	c := &Temp{zonePath: zone}
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "51.0", res)

	c.zonePath = filepath.Join(t.TempDir(), "missing")
	_, err = c.Run(context.Background())
	require.Error(t, err)
}

func TestClockSpeed(t *testing.T) {
	c := NewClockSpeed(true)

	res, err := c.processVcgencmd("frequency(48)=1500345728")
	require.NoError(t, err)
	require.Equal(t, "1500.345728", res)

	_, err = c.processVcgencmd("frequency")
	require.Error(t, err)

	res, err = c.processScalingFreq("2400000\n")
	require.NoError(t, err)
	require.Equal(t, "2400", res)

	_, err = c.processScalingFreq("n/a")
	require.Error(t, err)
}
