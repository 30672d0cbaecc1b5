package domain

import "fmt"

// Snapshot is a recorded board plus the 1-based coordinates of the move
// that produced it. Row and Col are 0 for the initial snapshot.
type Snapshot struct {
	Board   Board
	Row     int
	Col     int
	Winners [9]bool
}

// Coordinates renders the move as "(col,row)", or "" for the game start.
func (s Snapshot) Coordinates() string {
	if s.Row == 0 {
		return ""
	}
	return fmt.Sprintf("(%d,%d)", s.Col, s.Row)
}

// History is a linear list of snapshots. Index 0 is always the empty board.
// A History value is never modified in place, so copies can be shared.
type History struct {
	snaps []Snapshot
}

// NewHistory returns a history holding only the empty board.
func NewHistory() History {
	return History{snaps: []Snapshot{{}}}
}

// Len returns the number of snapshots.
func (h History) Len() int { return len(h.snaps) }

// At returns the snapshot at step.
func (h History) At(step int) (Snapshot, error) {
	if step < 0 || step >= len(h.snaps) {
		return Snapshot{}, fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, step, len(h.snaps))
	}
	return h.snaps[step], nil
}

// Snapshots returns a copy of all snapshots in order.
func (h History) Snapshots() []Snapshot {
	return append([]Snapshot(nil), h.snaps...)
}

// Append drops every snapshot after parent, appends snap and returns the
// resulting history with the new step index (parent+1). parent is clamped
// to the recorded range, so the empty board always stays at index 0.
func (h History) Append(parent int, snap Snapshot) (History, int) {
	if parent >= len(h.snaps) {
		parent = len(h.snaps) - 1
	}
	if parent < 0 {
		parent = 0
	}
	next := make([]Snapshot, parent+1, parent+2)
	copy(next, h.snaps[:parent+1])
	next = append(next, snap)
	return History{snaps: next}, parent + 1
}
