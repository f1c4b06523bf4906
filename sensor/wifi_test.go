package sensor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWifiStrength(t *testing.T) {
	input := `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
wlan0: 0000   56.  -54.  -256        0      0      0      0     12        0
`
	require.Equal(t, "-54", NewWifiStrength("wlan0").process(input))
	require.Equal(t, "0", NewWifiStrength("wlan1").process(input))
	require.Equal(t, "0", NewWifiStrength("").process(""))
}

func TestWifiStrength_Run(t *testing.T) {
	dir := t.TempDir()

	w := WifiStrength{Interface: "wlan0", path: filepath.Join(dir, "wireless")}
	res, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0", res)

	require.NoError(t, os.WriteFile(w.path, []byte("wlan0: 0000   56.  -61.  -256 0 0 0 0 0 0\n"), 0o600))
	res, err = w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "-61", res)
}

func TestWifiSSID(t *testing.T) {
	w := WifiSSID{command: func(context.Context) (string, error) { return "HomeNet\n", nil }}
	res, err := w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "HomeNet", res)

	w.command = func(context.Context) (string, error) { return "", nil }
	res, err = w.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "UNKNOWN", res)

	w.command = func(context.Context) (string, error) { return "", errors.New("exit status 255") }
	_, err = w.Run(context.Background())
	require.Error(t, err)
}
