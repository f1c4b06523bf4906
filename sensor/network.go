package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"systemsensors/util"
)

// Direction selects which counter a Network runner tracks.
type Direction int

const (
	Transmit Direction = iota
	Receive
)

func (d Direction) String() string {
	if d == Receive {
		return "rx"
	}
	return "tx"
}

// CounterFunc returns the host's total sent and received byte counters.
type CounterFunc func(ctx context.Context) (sent, recv uint64, err error)

// Network reports throughput in kbit/s since its previous run.
// Every instance keeps its own counter snapshot.
type Network struct {
	direction Direction
	counters  CounterFunc
	clock     util.Clock

	previous     uint64
	previousTime time.Time
	primed       bool
}

func NewNetwork(direction Direction, clock util.Clock, counters CounterFunc) *Network {
	if clock == nil {
		clock = util.RealClock()
	}
	if counters == nil {
		counters = IOCounters
	}
	return &Network{
		direction: direction,
		counters:  counters,
		clock:     clock,
	}
}

// IOCounters sums all interfaces through gopsutil.
func IOCounters(ctx context.Context) (uint64, uint64, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	if len(stats) == 0 {
		return 0, 0, fmt.Errorf("no network counters available")
	}
	return stats[0].BytesSent, stats[0].BytesRecv, nil
}

func (n *Network) Run(ctx context.Context) (string, error) {
	sent, recv, err := n.counters(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read %s counters: %w", n.direction, err)
	}
	current := sent
	if n.direction == Receive {
		current = recv
	}
	now := n.clock.Now()
	if !n.primed {
		n.previous = current
		n.previousTime = now
		n.primed = true
	}

	elapsed := now.Sub(n.previousTime).Seconds()
	if elapsed == 0 {
		elapsed = 1
	}
	var delta float64
	if current >= n.previous {
		delta = float64(current - n.previous)
	}
	kbps := delta / elapsed * 8 / 1024

	n.previous = current
	n.previousTime = now

	return util.FormatDecimals(kbps, 2), nil
}
