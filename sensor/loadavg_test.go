package sensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAVG(t *testing.T) {
	input := "0.52 0.58 0.59 1/467 12345\n"

	for index, want := range []string{"0.52", "0.58", "0.59"} {
		res, err := NewLoadAVG(index).process(input)
		require.NoError(t, err)
		require.Equal(t, want, res)
	}

	_, err := NewLoadAVG(0).process("0.52")
	require.Error(t, err)

	_, err = NewLoadAVG(3).process(input)
	require.Error(t, err)

	_, err = NewLoadAVG(1).process("0.52 abc 0.59")
	require.Error(t, err)
}
