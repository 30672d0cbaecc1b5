package domain

import (
	"errors"
	"fmt"
)

// Errors returned by domain operations.
var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrOccupied       = errors.New("cell occupied")
	ErrGameOver       = errors.New("game over")
	ErrStepOutOfRange = errors.New("step out of range")
)

// Game holds a match together with every board it has passed through.
// The zero value is not usable; create games with New.
type Game struct {
	history   History
	step      int
	highlight bool
}

// Option configures a Game.
type Option func(*Game)

// WithHighlight records the winning line on each snapshot so renderers can mark it.
func WithHighlight(on bool) Option {
	return func(g *Game) { g.highlight = on }
}

// New returns a new game with X to move.
func New(opts ...Option) Game {
	g := Game{history: NewHistory()}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Step returns the index of the snapshot currently shown.
func (g Game) Step() int { return g.step }

// History returns the full recorded history, including steps after Step.
func (g Game) History() History { return g.history }

// Highlight reports whether winning lines are recorded.
func (g Game) Highlight() bool { return g.highlight }

// Current returns the snapshot at Step.
func (g Game) Current() Snapshot {
	s, _ := g.history.At(g.step)
	return s
}

// Next returns the mark to be placed by the next move.
func (g Game) Next() Cell {
	if g.step%2 == 0 {
		return X
	}
	return O
}

// Play places the next mark at cell (0..8, row-major). A rejected move
// leaves the game untouched.
func (g *Game) Play(cell int) error {
	if cell < 0 || cell >= len(Board{}) {
		return fmt.Errorf("%w: cell %d", ErrOutOfBounds, cell)
	}
	cur := g.Current()
	if Winner(cur.Board) != Empty {
		return ErrGameOver
	}
	if cur.Board[cell] != Empty {
		return ErrOccupied
	}

	b := cur.Board
	b[cell] = g.Next()
	snap := Snapshot{Board: b, Row: cell/3 + 1, Col: cell%3 + 1}
	if g.highlight {
		snap.Winners = WinningCells(b)
	}
	g.history, g.step = g.history.Append(g.step, snap)
	return nil
}

// Click is Play for UI callers: illegal input is ignored.
func (g *Game) Click(cell int) {
	_ = g.Play(cell)
}

// JumpTo moves the game to an earlier (or later) recorded step. Snapshots
// after step are kept until the next move is played from there.
func (g *Game) JumpTo(step int) error {
	if _, err := g.history.At(step); err != nil {
		return err
	}
	g.step = step
	return nil
}

// Jump is JumpTo for UI callers: out of range steps are ignored.
func (g *Game) Jump(step int) {
	_ = g.JumpTo(step)
}

// StatusKind classifies the position at the current step.
type StatusKind uint8

const (
	InProgress StatusKind = iota
	Won
	Draw
)

// Status describes the current position. Mark is the winner for Won and the
// player to move for InProgress.
type Status struct {
	Kind StatusKind
	Mark Cell
}

func (s Status) String() string {
	switch s.Kind {
	case Won:
		return "Winner: " + s.Mark.String()
	case Draw:
		return "Cat's game!"
	default:
		return "Next player: " + s.Mark.String()
	}
}

// Status derives the result from the current snapshot. A board becomes a
// draw once nine moves are played without a line; every move fills exactly
// one empty cell, so the step count stands in for an occupancy scan.
func (g Game) Status() Status {
	if w := Winner(g.Current().Board); w != Empty {
		return Status{Kind: Won, Mark: w}
	}
	if g.step >= len(Board{}) {
		return Status{Kind: Draw}
	}
	return Status{Kind: InProgress, Mark: g.Next()}
}

// Over reports whether no further move can be played from the current step.
func (g Game) Over() bool {
	return g.Status().Kind != InProgress
}

// Move is one entry of the move list shown next to the board.
type Move struct {
	Step        int
	Label       string
	Coordinates string
	Current     bool
}

// Moves lists every recorded step, including those after Step.
func (g Game) Moves() []Move {
	out := make([]Move, 0, g.history.Len())
	for i, s := range g.history.snaps {
		label := "Go to game start"
		if i > 0 {
			label = fmt.Sprintf("Go to move #%d", i)
		}
		out = append(out, Move{
			Step:        i,
			Label:       label,
			Coordinates: s.Coordinates(),
			Current:     i == g.step,
		})
	}
	return out
}

// View is everything a renderer needs to draw the game.
type View struct {
	Board   Board
	Winners [9]bool
	Status  string
	Next    Cell
	Over    bool
	Step    int
	Moves   []Move
}

// View returns the render input for the current step.
func (g Game) View() View {
	cur := g.Current()
	st := g.Status()
	return View{
		Board:   cur.Board,
		Winners: cur.Winners,
		Status:  st.String(),
		Next:    g.Next(),
		Over:    st.Kind != InProgress,
		Step:    g.step,
		Moves:   g.Moves(),
	}
}
