package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendRows_LoneSignal(t *testing.T) {
	rows := zeroRows(50, 60, 20)
	// Signal at position 55 (index 5).
	rows[5].T = 12
	rows[5].NoVariant = 0

	out := ExtendRows(rows, 2)

	for _, r := range out {
		if r.Pos >= 53 && r.Pos <= 57 {
			assert.Equal(t, 12.0, r.T, "position %d should carry the smeared vector", r.Pos)
		} else {
			assert.False(t, r.HasSignal(), "position %d should stay zero", r.Pos)
		}
	}

	// Positions 52 and 58 sit just outside the window.
	assert.False(t, out[2].HasSignal())
	assert.False(t, out[8].HasSignal())
}

func TestExtendRows_LeavesDepthColumnsAlone(t *testing.T) {
	rows := zeroRows(1, 9, 15)
	rows[4].A = 7
	rows[4].NoVariant = 0

	out := ExtendRows(rows, 3)

	for i, r := range out {
		assert.Equal(t, rows[i].NoVariant, r.NoVariant, "position %d", r.Pos)
		assert.Equal(t, rows[i].Total, r.Total, "position %d", r.Pos)
	}
}

func TestExtendRows_ClampedAtBounds(t *testing.T) {
	rows := zeroRows(1, 5, 10)
	rows[0].G = 4
	rows[0].NoVariant = 0

	out := ExtendRows(rows, 3)

	for i := 0; i <= 3; i++ {
		assert.Equal(t, 4.0, out[i].G)
	}
	assert.False(t, out[4].HasSignal())
}

func TestExtendRows_LastWriterWins(t *testing.T) {
	rows := zeroRows(1, 10, 10)
	rows[2].A = 5
	rows[2].NoVariant = 0
	rows[4].C = 9
	rows[4].NoVariant = 0

	out := ExtendRows(rows, 2)

	// Rows 3-5 (indices 2-4) fall in both windows; the later signal row wins.
	for i := 2; i <= 6; i++ {
		assert.Equal(t, 9.0, out[i].C, "index %d", i)
		assert.Equal(t, 0.0, out[i].A, "index %d", i)
	}
	// Rows 1-2 (indices 0-1) only saw the first signal row.
	assert.Equal(t, 5.0, out[0].A)
	assert.Equal(t, 5.0, out[1].A)
}

func TestExtendRows_ZeroExtendIsIdentity(t *testing.T) {
	rows := zeroRows(1, 10, 10)
	rows[3].T = 6

	out := ExtendRows(rows, 0)
	assert.Equal(t, rows, out)
}

func TestExtendRows_Idempotent(t *testing.T) {
	rows := zeroRows(1, 30, 10)
	rows[5].A = 3
	rows[5].NoVariant = 0
	rows[8].T = 7
	rows[8].NoVariant = 0
	rows[20].G = 2
	rows[20].NoVariant = 0

	once := ExtendRows(rows, 4)
	twice := ExtendRows(once, 4)

	require.Equal(t, once, twice)
}

func TestExtendRows_IdempotentAdjacentSignals(t *testing.T) {
	// Signal rows inside each other's windows must not widen the smear on a
	// second application.
	rows := zeroRows(1, 20, 10)
	rows[9].A = 3
	rows[9].NoVariant = 0
	rows[10].C = 8
	rows[10].NoVariant = 0

	once := ExtendRows(rows, 3)
	twice := ExtendRows(once, 3)

	require.Equal(t, once, twice)
}
