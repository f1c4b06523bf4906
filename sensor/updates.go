package sensor

import (
	"bufio"
	"context"
	"strconv"
	"strings"
	"time"

	"systemsensors/logger"
	"systemsensors/util"
)

const updateCheckInterval = time.Hour

// CountFunc returns the number of pending package upgrades.
type CountFunc func(ctx context.Context) (int, error)

// Updates reports the number of pending apt upgrades. Simulating an
// upgrade is slow, so the count is recomputed at most once per hour.
type Updates struct {
	clock util.Clock
	count CountFunc

	lastCheck time.Time
	available int
}

func NewUpdates(clock util.Clock, count CountFunc) *Updates {
	if clock == nil {
		clock = util.RealClock()
	}
	if count == nil {
		count = AptUpgradable
	}
	return &Updates{clock: clock, count: count}
}

func (u *Updates) Run(ctx context.Context) (string, error) {
	now := u.clock.Now()
	if u.lastCheck.IsZero() || now.Sub(u.lastCheck) > updateCheckInterval {
		logger.Debug().Time("last_check", u.lastCheck).Msg("checking available updates")
		// A failed check waits for the next interval as well.
		u.lastCheck = now
		n, err := u.count(ctx)
		if err != nil {
			return "", err
		}
		u.available = n
	}
	return strconv.Itoa(u.available), nil
}

// AptUpgradable simulates "apt-get upgrade" and counts the packages
// that would be installed.
func AptUpgradable(ctx context.Context) (int, error) {
	out, err := util.Command(ctx, "apt-get", "-s", "-o", "Debug::NoLocking=true", "upgrade")
	if err != nil {
		return 0, err
	}
	return countAptInstalls(out), nil
}

func countAptInstalls(output string) int {
	var n int
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "Inst ") {
			n++
		}
	}
	return n
}
