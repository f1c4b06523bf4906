package sensor

import (
	"strings"

	"github.com/joho/godotenv"
)

const osReleasePath = "/etc/os-release"

// OSRelease holds the KEY=VALUE pairs of /etc/os-release.
type OSRelease map[string]string

// ReadOSRelease parses the os-release file at path. A missing or
// unreadable file yields an empty OSRelease.
func ReadOSRelease(path string) OSRelease {
	if path == "" {
		path = osReleasePath
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return OSRelease{}
	}
	return values
}

// ID returns the distribution identifier, e.g. "raspbian" or "debian".
func (o OSRelease) ID() string {
	return o["ID"]
}

// IsRaspberry reports whether the host runs Raspberry Pi OS.
func (o OSRelease) IsRaspberry() bool {
	return strings.Contains(strings.ToLower(o.ID()), "rasp")
}

// PrettyName returns PRETTY_NAME or "Unknown".
func (o OSRelease) PrettyName() string {
	if name := o["PRETTY_NAME"]; name != "" {
		return name
	}
	return "Unknown"
}
