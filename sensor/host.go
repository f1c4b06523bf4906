package sensor

import (
	"context"
	"net"

	"github.com/shirou/gopsutil/v3/host"
)

// Hostname reports the host name.
type Hostname struct{}

func NewHostname() *Hostname {
	return &Hostname{}
}

func (Hostname) Run(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	return info.Hostname, nil
}

// HostIP reports the address of the interface that routes to the
// internet. No packet is sent: dialing UDP only selects a route.
type HostIP struct {
	target string
}

func NewHostIP() *HostIP {
	return &HostIP{target: "8.8.8.8:80"}
}

func (h HostIP) Run(ctx context.Context) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", h.target)
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String(), nil
		}
	}
	return h.fallback(ctx), nil
}

func (h HostIP) fallback(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "127.0.0.1"
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, info.Hostname)
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ip4 := addr.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "127.0.0.1"
}

// HostOS reports PRETTY_NAME from os-release.
type HostOS struct {
	release OSRelease
}

func NewHostOS(release OSRelease) *HostOS {
	return &HostOS{release: release}
}

func (h HostOS) Run(_ context.Context) (string, error) {
	return h.release.PrettyName(), nil
}

// HostArch reports the machine hardware name, e.g. "aarch64".
type HostArch struct{}

func NewHostArch() *HostArch {
	return &HostArch{}
}

func (HostArch) Run(ctx context.Context) (string, error) {
	arch, err := host.KernelArch()
	if err != nil || arch == "" {
		return "Unknown", nil
	}
	return arch, nil
}
