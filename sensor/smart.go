package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"systemsensors/util"
)

// NotAvailable is reported when a device does not expose an attribute.
const NotAvailable = "not available"

const (
	attrAirflowTemperature = 190
	attrTemperature        = 194
	attrTotalLBAsWritten   = 241
)

// smartctl sets bits 0-2 of its exit status for command line, open and
// command failures. Higher bits only describe the disk's health.
const smartctlFatalBits = 0x07

type smartAttributes struct {
	ATASmartAttributes struct {
		Table []struct {
			ID  int    `json:"id"`
			Raw struct {
				Value  int64  `json:"value"`
				String string `json:"string"`
			} `json:"raw"`
		} `json:"table"`
	} `json:"ata_smart_attributes"`
}

func (a smartAttributes) raw(id int) (int64, bool) {
	for _, attr := range a.ATASmartAttributes.Table {
		if attr.ID == id {
			return attr.Raw.Value, true
		}
	}
	return 0, false
}

// ReadSmartFunc returns the JSON output of "smartctl --json -A device".
type ReadSmartFunc func(ctx context.Context, device string) ([]byte, error)

// SmartctlAttributes runs smartctl for device.
func SmartctlAttributes(ctx context.Context, device string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "smartctl", "--json", "-A", device).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode()&smartctlFatalBits == 0 {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("smartctl failed for %s: %w", device, err)
	}
	return out, nil
}

type smartDevice struct {
	Device string
	read   ReadSmartFunc
}

func (d smartDevice) attributes(ctx context.Context) (smartAttributes, error) {
	var attrs smartAttributes
	read := d.read
	if read == nil {
		read = SmartctlAttributes
	}
	b, err := read(ctx, d.Device)
	if err != nil {
		return attrs, err
	}
	if err := json.Unmarshal(b, &attrs); err != nil {
		return attrs, fmt.Errorf("failed to parse smartctl output for %s: %w", d.Device, err)
	}
	return attrs, nil
}

// DiskTemperature reports the drive temperature in °C from SMART
// attribute 190, falling back to 194.
type DiskTemperature struct {
	smartDevice
}

func NewDiskTemperature(device string) *DiskTemperature {
	return &DiskTemperature{smartDevice{Device: device}}
}

func (d DiskTemperature) Run(ctx context.Context) (string, error) {
	attrs, err := d.attributes(ctx)
	if err != nil {
		return "", err
	}
	for _, id := range []int{attrAirflowTemperature, attrTemperature} {
		if raw, ok := attrs.raw(id); ok {
			// Only the lowest byte holds the current temperature.
			return strconv.FormatInt(raw&0xff, 10), nil
		}
	}
	return NotAvailable, nil
}

// DiskWritten reports the total data written (TBW) in GiB from SMART
// attribute 241, counted in 512 byte LBAs.
type DiskWritten struct {
	smartDevice
}

func NewDiskWritten(device string) *DiskWritten {
	return &DiskWritten{smartDevice{Device: device}}
}

func (d DiskWritten) Run(ctx context.Context) (string, error) {
	attrs, err := d.attributes(ctx)
	if err != nil {
		return "", err
	}
	raw, ok := attrs.raw(attrTotalLBAsWritten)
	if !ok {
		return NotAvailable, nil
	}
	gib := math.Round(float64(raw) * 512 / 1024 / 1024 / 1024)
	return util.FormatDecimals(gib, 0), nil
}
