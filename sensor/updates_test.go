package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"systemsensors/util"
)

func TestUpdatesRateLimit(t *testing.T) {
	clock := util.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	calls := 0
	pending := 4
	u := NewUpdates(clock, func(context.Context) (int, error) {
		calls++
		return pending, nil
	})
	ctx := context.Background()

	res, err := u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "4", res)
	require.Equal(t, 1, calls)

	// Within the same hour the cached value is returned.
	pending = 9
	clock.Advance(30 * time.Minute)
	res, err = u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "4", res)

	clock.Advance(30 * time.Minute)
	res, err = u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "4", res)
	require.Equal(t, 1, calls)

	// More than one hour after the last check it recomputes.
	clock.Advance(time.Second)
	res, err = u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "9", res)
	require.Equal(t, 2, calls)
}

func TestUpdatesError(t *testing.T) {
	clock := util.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	calls := 0
	u := NewUpdates(clock, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("apt-get not found")
	})
	_, err := u.Run(context.Background())
	require.Error(t, err)

	// The failed check is not retried before the interval passed.
	clock.Advance(10 * time.Minute)
	res, err := u.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0", res)
	require.Equal(t, 1, calls)

	clock.Advance(time.Hour)
	_, err = u.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestCountAptInstalls(t *testing.T) {
	output := `Reading package lists...
Building dependency tree...
Calculating upgrade...
The following packages will be upgraded:
  libssl3 openssl
2 upgraded, 0 newly installed, 0 to remove and 0 not upgraded.
Inst libssl3 [3.0.11-1~deb12u1] (3.0.11-1~deb12u2 Debian-Security:12/stable-security [arm64])
Inst openssl [3.0.11-1~deb12u1] (3.0.11-1~deb12u2 Debian-Security:12/stable-security [arm64])
Conf libssl3 (3.0.11-1~deb12u2 Debian-Security:12/stable-security [arm64])
Conf openssl (3.0.11-1~deb12u2 Debian-Security:12/stable-security [arm64])`
	require.Equal(t, 2, countAptInstalls(output))
	require.Equal(t, 0, countAptInstalls(""))
}
