package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is one entry of the hidden layout: a hint count 0-8 or [Mine].
type Cell int8

const Mine Cell = 9

func (c Cell) IsMine() bool {
	return c == Mine
}

func (c Cell) String() string {
	if c == Mine {
		return "*"
	}
	return strconv.Itoa(int(c))
}

type Layout []Cell

func (l Layout) MineCount() int {
	n := 0
	for _, c := range l {
		if c == Mine {
			n++
		}
	}
	return n
}

type CellStatus int8

const (
	Hidden       CellStatus = -2
	Flagged      CellStatus = -1
	RevealedMine CellStatus = CellStatus(Mine)
	// 0-8 for a revealed hint
)

func (s CellStatus) Revealed() bool {
	return 0 <= s && s <= RevealedMine
}

func (s CellStatus) String() string {
	switch {
	case s == Hidden:
		return " "
	case s == Flagged:
		return "F"
	case s == RevealedMine:
		return "*"
	case s.Revealed():
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

type Status int8

const (
	InProgress Status = iota
	Pressed
	Won
	Lost
)

var statusNames = [...]string{
	InProgress: "in_progress",
	Pressed:    "pressed",
	Won:        "won",
	Lost:       "lost",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("invalid status %q", text)
}
