package sensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	input := `
		MemTotal:       16279032 kB
		MemFree:          479256 kB
		MemAvailable:    4469240 kB
		Buffers:         1003708 kB
		SwapTotal:      16658428 kB
		SwapFree:       15672316 kB
	`
	// (16279032-4469240) * 100 / 16279032 = 72.545...
	res, err := NewMemory().process(input)
	require.NoError(t, err)
	require.Equal(t, 72.5, res)

	// (16658428-15672316) * 100 / 16658428 = 5.919...
	res, err = NewSwap().process(input)
	require.NoError(t, err)
	require.Equal(t, 5.9, res)
}

func TestMemory_NoSwap(t *testing.T) {
	input := `
		MemTotal:        1000000 kB
		MemFree:          200000 kB
		Buffers:          100000 kB
		Cached:           100000 kB
		SwapTotal:             0 kB
		SwapFree:              0 kB
	`
	res, err := NewSwap().process(input)
	require.NoError(t, err)
	require.Equal(t, float64(0), res)

	// MemAvailable is missing, free+buffers+cached is used instead.
	res, err = NewMemory().process(input)
	require.NoError(t, err)
	require.Equal(t, 60.0, res)

	_, err = NewMemory().process("garbage")
	require.Error(t, err)
}
