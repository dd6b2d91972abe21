package fsst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersIncSingle(t *testing.T) {
	var c counters
	c.incConcat(3, 4)
	require.NotZero(t, c.pairLow[3][4])
	require.NotZero(t, c.pairHigh[3][2]) // 4 is even: low nibble of byte 2

	c.incSingle(5)
	require.Equal(t, uint8(1), c.singleLow[5])
	require.Equal(t, uint8(1), c.singleHigh[5])
	c.incSingle(5)
	require.Equal(t, uint8(2), c.singleLow[5])
	require.Equal(t, uint8(1), c.singleHigh[5])
}

// TestCounterSkip checks that getSingleAndForward leaves pos untouched
// when it already points at a nonzero counter, and advances it to the
// next nonzero counter otherwise.
func TestCounterSkip(t *testing.T) {
	var c counters
	c.incSingle(0)
	c.incSingle(5)

	pos := 0
	require.Equal(t, uint32(1), c.getSingleAndForward(&pos))
	require.Equal(t, 0, pos)

	pos++
	require.Equal(t, uint32(1), c.getSingleAndForward(&pos))
	require.Equal(t, 5, pos)
}

// TestCounterLowByteWrapAndEarlyIncrement checks that the high part,
// bumped early on the first hit, lets both the single and the pair
// counter read back 256 once the low byte wraps to 0 on the 256th hit.
func TestCounterLowByteWrapAndEarlyIncrement(t *testing.T) {
	var c counters
	for range 255 {
		c.incSingle(0)
		c.incConcat(0, 0)
	}
	require.Equal(t, uint8(255), c.singleLow[0])

	c.incSingle(0)
	pos := 0
	require.Equal(t, uint32(256), c.getSingleAndForward(&pos))
	require.Equal(t, uint8(0), c.singleLow[0])

	c.incConcat(0, 0)
	pos2 := 0
	require.Equal(t, uint32(256), c.getConcatAndForward(0, &pos2))
}

func TestCounterGetConcatAndForwardCrossesWindows(t *testing.T) {
	var c counters
	c.incConcat(1, 20)
	pos2 := 0
	// Nibbles 0..15 are all zero: the first call stops on the window's
	// last slot, and the caller's increment moves into the next window.
	require.Equal(t, uint32(0), c.getConcatAndForward(1, &pos2))
	require.Equal(t, 15, pos2)
	pos2++
	require.Equal(t, uint32(1), c.getConcatAndForward(1, &pos2))
	require.Equal(t, 20, pos2)
}

func TestCounterResetAndBackupRestore(t *testing.T) {
	var c counters
	c.incSingle(7)
	c.incConcat(1, 2)
	backup := c.backupSingle()

	c.reset()
	require.Zero(t, c.singleLow[7])
	require.Zero(t, c.pairLow[1][2])

	c.restoreSingle(backup)
	require.Equal(t, uint8(1), c.singleLow[7])
	pos := 0
	require.Equal(t, uint32(1), c.getSingleAndForward(&pos))
	require.Equal(t, 7, pos)
}
