package sensor

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"systemsensors/util"
)

// LastBoot reports the boot time as an RFC 3339 timestamp in the
// configured time zone.
type LastBoot struct {
	location *time.Location
	bootTime func(ctx context.Context) (uint64, error)
}

func NewLastBoot(location *time.Location) *LastBoot {
	if location == nil {
		location = time.Local
	}
	return &LastBoot{location: location, bootTime: host.BootTimeWithContext}
}

func (u LastBoot) Run(ctx context.Context) (string, error) {
	seconds, err := u.bootTime(ctx)
	if err != nil {
		return "", err
	}
	return time.Unix(int64(seconds), 0).In(u.location).Format(time.RFC3339), nil
}

// LastMessage reports the time of the current update cycle.
type LastMessage struct {
	location *time.Location
	clock    util.Clock
}

func NewLastMessage(location *time.Location, clock util.Clock) *LastMessage {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = util.RealClock()
	}
	return &LastMessage{location: location, clock: clock}
}

func (m LastMessage) Run(_ context.Context) (string, error) {
	return m.clock.Now().In(m.location).Format(time.RFC3339), nil
}
