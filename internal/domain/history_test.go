package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()

	require.Equal(t, 1, h.Len())
	s, err := h.At(0)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, s)
	assert.Equal(t, "", s.Coordinates())
}

func TestHistoryAt(t *testing.T) {
	h := NewHistory()

	_, err := h.At(1)
	require.ErrorIs(t, err, ErrStepOutOfRange)
	_, err = h.At(-1)
	require.ErrorIs(t, err, ErrStepOutOfRange)
}

func TestHistoryAppend(t *testing.T) {
	h := NewHistory()

	h, step := h.Append(0, Snapshot{Board: Board{X}, Row: 1, Col: 1})
	require.Equal(t, 1, step)
	h, step = h.Append(1, Snapshot{Board: Board{X, O}, Row: 1, Col: 2})
	require.Equal(t, 2, step)
	require.Equal(t, 3, h.Len())

	s, err := h.At(2)
	require.NoError(t, err)
	assert.Equal(t, "(2,1)", s.Coordinates())
}

func TestHistoryAppendTruncates(t *testing.T) {
	h := NewHistory()
	h, _ = h.Append(0, Snapshot{Board: Board{X}, Row: 1, Col: 1})
	h, _ = h.Append(1, Snapshot{Board: Board{X, O}, Row: 1, Col: 2})
	h, _ = h.Append(2, Snapshot{Board: Board{X, O, X}, Row: 1, Col: 3})

	// When: branching from step 1
	branched, step := h.Append(1, Snapshot{Board: Board{X, Empty, Empty, O}, Row: 2, Col: 1})

	// Then: the abandoned steps are gone from the new history
	require.Equal(t, 2, step)
	require.Equal(t, 3, branched.Len())
	s, err := branched.At(2)
	require.NoError(t, err)
	assert.Equal(t, "(1,2)", s.Coordinates())

	// Then: the original history is untouched
	require.Equal(t, 4, h.Len())
	s, err = h.At(2)
	require.NoError(t, err)
	assert.Equal(t, Board{X, O}, s.Board)
}

func TestHistorySnapshotsIsACopy(t *testing.T) {
	h := NewHistory()
	snaps := h.Snapshots()
	snaps[0].Board[0] = X

	s, _ := h.At(0)
	assert.Equal(t, Empty, s.Board[0])
}

func TestHistoryAppendClampsParent(t *testing.T) {
	h := NewHistory()
	h, _ = h.Append(0, Snapshot{Board: Board{X}, Row: 1, Col: 1})

	// Given: a negative parent
	low, step := h.Append(-1, Snapshot{Board: Board{Empty, X}, Row: 1, Col: 2})

	// Then: the empty board stays at index 0 and the new snapshot follows it
	require.Equal(t, 1, step)
	require.Equal(t, 2, low.Len())
	s, err := low.At(0)
	require.NoError(t, err)
	assert.Equal(t, Board{}, s.Board)

	// Given: a parent past the end
	high, step := h.Append(10, Snapshot{Board: Board{X, O}, Row: 1, Col: 2})

	// Then: it appends after the last snapshot
	require.Equal(t, 2, step)
	require.Equal(t, 3, high.Len())
}
