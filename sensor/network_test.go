package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"systemsensors/util"
)

type fakeCounters struct {
	sent, recv uint64
	err        error
}

func (f *fakeCounters) read(context.Context) (uint64, uint64, error) {
	return f.sent, f.recv, f.err
}

func TestNetworkThroughput(t *testing.T) {
	clock := util.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	counters := &fakeCounters{sent: 1000, recv: 5000}

	tx := NewNetwork(Transmit, clock, counters.read)
	rx := NewNetwork(Receive, clock, counters.read)
	ctx := context.Background()

	// The first run only primes the snapshot.
	res, err := tx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.00", res)
	res, err = rx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.00", res)

	// D bytes over T seconds: D * 8 / 1024 / T
	clock.Advance(10 * time.Second)
	counters.sent += 128000
	counters.recv += 1280000

	res, err = tx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "100.00", res)

	res, err = rx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "1000.00", res)

	clock.Advance(3 * time.Second)
	counters.sent += 1000

	res, err = tx.Run(ctx)
	require.NoError(t, err)
	// 1000 * 8 / 1024 / 3 = 2.6041...
	require.Equal(t, "2.60", res)
}

func TestNetworkThroughput_ZeroElapsed(t *testing.T) {
	clock := util.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	counters := &fakeCounters{sent: 0}
	tx := NewNetwork(Transmit, clock, counters.read)
	ctx := context.Background()

	_, err := tx.Run(ctx)
	require.NoError(t, err)

	// Same timestamp: elapsed is clamped to one second.
	counters.sent = 2048
	res, err := tx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "16.00", res)
}

func TestNetworkThroughput_CounterReset(t *testing.T) {
	clock := util.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	counters := &fakeCounters{recv: 10000}
	rx := NewNetwork(Receive, clock, counters.read)
	ctx := context.Background()

	_, err := rx.Run(ctx)
	require.NoError(t, err)

	clock.Advance(time.Second)
	counters.recv = 10
	res, err := rx.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.00", res)

	counters.err = errors.New("proc not mounted")
	_, err = rx.Run(ctx)
	require.EqualError(t, err, "failed to read rx counters: proc not mounted")
}
