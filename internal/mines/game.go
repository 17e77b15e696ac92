package mines

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log logrus.FieldLogger = logrus.StandardLogger()

// GameState owns one board: the hidden layout, the player's view of it and the
// game status. It is not safe for concurrent use.
type GameState struct {
	GameParams
	layout  Layout /* real mine points */
	grid    Grid   /* player knowledge */
	status  Status
	version uint64
	moves   int
	rnd     *rand.Rand
}

// Snapshot is a read-only copy of the player-visible state.
type Snapshot struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Cells   Grid   `json:"cells"`
	Status  Status `json:"status"`
	Version uint64 `json:"version"`
	Moves   int    `json:"moves"`
}

func NewGame(params GameParams, r *rand.Rand) (state *GameState, err error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			var ae AssertionError
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				state, err = nil, ae
				return
			}
			panic(r)
		}
	}()

	state = &GameState{GameParams: params, rnd: r}
	state.start(Generate(params.Width, params.Height, params.MineProbability, r))
	return state, nil
}

// NewGameWithLayout starts a game on a known layout. r is used by [GameState.Reset].
func NewGameWithLayout(params GameParams, layout Layout, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(layout) != params.Size() {
		return nil, AssertionError{"layout does not match grid size"}
	}
	for _, c := range layout {
		if !(c == Mine || 0 <= c && c <= 8) {
			return nil, AssertionError{"layout contains an invalid cell"}
		}
	}
	state := &GameState{GameParams: params, rnd: r}
	state.start(slices.Clone(layout))
	return state, nil
}

func (s *GameState) start(layout Layout) {
	s.layout = layout
	s.grid = make(Grid, len(layout))
	for i := range s.grid {
		s.grid[i] = Hidden
	}
	s.status = InProgress
	s.moves = 0
	s.version++
}

// Reset discards the board and deals a fresh one with the same parameters.
func (s *GameState) Reset() {
	s.start(Generate(s.Width, s.Height, s.MineProbability, s.rnd))
	Log.WithField("params", s.GameParams.String()).Debug("game reset")
}

// PrimaryAction applies a click on cell i. With alt set the cell's flag is
// toggled, otherwise the cell is revealed (or un-flagged if it carries a flag).
//
// panics [AssertionError]
func (s *GameState) PrimaryAction(i int, alt bool) {
	if !s.ValidateIndex(i) {
		panic(AssertionError{"cell index out of range"})
	}
	if s.status.Terminal() {
		return
	}

	if alt {
		if !s.toggleFlag(i) {
			return
		}
	} else if s.grid[i] == Flagged {
		s.grid[i] = Hidden
	} else {
		s.grid[i] = CellStatus(s.layout[i])
	}

	s.moves++
	s.version++
	s.evaluate()
}

// toggleFlag reports whether the cell changed; revealed cells keep their value.
func (s *GameState) toggleFlag(i int) bool {
	switch s.grid[i] {
	case Hidden:
		s.grid[i] = Flagged
	case Flagged:
		s.grid[i] = Hidden
	default:
		return false
	}
	return true
}

func (s *GameState) evaluate() {
	switch {
	case s.lost():
		s.status = Lost
		s.revealAll()
		Log.WithFields(logrus.Fields{
			"moves": s.moves,
			"board": "\n" + s.grid.ToString(s.Width),
		}).Debug("game lost")
	case s.won():
		s.status = Won
		Log.WithFields(logrus.Fields{
			"moves": s.moves,
			"board": "\n" + s.grid.ToString(s.Width),
		}).Debug("game won")
	default:
		s.status = InProgress
	}
}

func (s *GameState) lost() bool {
	return slices.Contains(s.grid, RevealedMine)
}

func (s *GameState) won() bool {
	if slices.Contains(s.grid, Hidden) {
		return false
	}
	for i, v := range s.grid {
		if v == CellStatus(s.layout[i]) {
			continue
		}
		if v == Flagged && s.layout[i].IsMine() {
			continue
		}
		return false
	}
	return true
}

func (s *GameState) revealAll() {
	for i, c := range s.layout {
		s.grid[i] = CellStatus(c)
	}
}

func (s *GameState) PressStart() {
	if s.status.Terminal() {
		return
	}
	s.status = Pressed
	s.version++
}

func (s *GameState) PressEnd() {
	if s.status.Terminal() {
		return
	}
	s.status = InProgress
	s.version++
}

func (s *GameState) Status() Status {
	return s.status
}

func (s *GameState) Terminal() bool {
	return s.status.Terminal()
}

func (s *GameState) Version() uint64 {
	return s.version
}

func (s *GameState) Moves() int {
	return s.moves
}

func (s *GameState) Layout() Layout {
	return slices.Clone(s.layout)
}

func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Width:   s.Width,
		Height:  s.Height,
		Cells:   slices.Clone(s.grid),
		Status:  s.status,
		Version: s.version,
		Moves:   s.moves,
	}
}
