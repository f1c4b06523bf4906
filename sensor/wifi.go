package sensor

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"systemsensors/util"
)

// WifiStrength reports the signal level (dBm) of Interface from
// /proc/net/wireless, or "0" when the interface is not listed or the
// file does not exist.
type WifiStrength struct {
	Interface string
	path      string
}

func NewWifiStrength(iface string) *WifiStrength {
	if iface == "" {
		iface = "wlan0"
	}
	return &WifiStrength{Interface: iface, path: "/proc/net/wireless"}
}

func (w WifiStrength) Run(ctx context.Context) (string, error) {
	b, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		// No wireless extensions on this host.
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return w.process(string(b)), nil
}

func (w WifiStrength) process(output string) string {
	prefix := w.Interface + ":"
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != prefix {
			continue
		}
		level, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
		if err != nil {
			continue
		}
		return strconv.Itoa(int(level))
	}
	return "0"
}

// WifiSSID reports the SSID the host is connected to, or "UNKNOWN".
type WifiSSID struct {
	command func(ctx context.Context) (string, error)
}

func NewWifiSSID() *WifiSSID {
	return &WifiSSID{command: func(ctx context.Context) (string, error) {
		return util.Command(ctx, "/usr/sbin/iwgetid", "-r")
	}}
}

func (w WifiSSID) Run(ctx context.Context) (string, error) {
	out, err := w.command(ctx)
	if err != nil {
		return "", err
	}
	if ssid := strings.TrimSpace(out); ssid != "" {
		return ssid, nil
	}
	return "UNKNOWN", nil
}
