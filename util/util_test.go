package util

import (
	"os/user"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHomePath(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	h, err := NewHomePath("~/config/settings.yaml")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(usr.HomeDir, "config/settings.yaml"), h.Path)

	h, err = NewHomePath("/etc/system-sensors/settings.yaml")
	require.NoError(t, err)
	require.Equal(t, "/etc/system-sensors/settings.yaml", h.Path)
}

func TestStringToOnOff(t *testing.T) {
	require.Equal(t, "ON", StringToOnOff("1\n"))
	require.Equal(t, "OFF", StringToOnOff(" 0"))
	require.Equal(t, "", StringToOnOff("maybe"))
}

func TestRoundTo(t *testing.T) {
	require.Equal(t, 12.35, RoundTo(12.345678, 2))
	require.Equal(t, 42.1, RoundTo(42.06, 1))
	require.Equal(t, "7.50", FormatDecimals(7.5, 2))
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	require.Equal(t, start, c.Now())
	c.Advance(90 * time.Minute)
	require.Equal(t, start.Add(90*time.Minute), c.Now())
}
