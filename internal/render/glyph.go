// Package render maps game state to the glyphs the presentation layers draw.
// The game core never sees these.
package render

import "github.com/vancomm/sweeper/internal/mines"

const (
	Mine        = "\U0001F4A3"
	Placeholder = "⬜"
	Flag        = "\U0001F6A7"

	FaceSmile   = "\U0001F642"
	FacePressed = "\U0001F62F"
	FaceLost    = "\U0001F92F"
	FaceWon     = "\U0001F60E"
)

var numbers = [...]string{
	"",
	"1️⃣",
	"2️⃣",
	"3️⃣",
	"4️⃣",
	"5️⃣",
	"6️⃣",
	"7️⃣",
	"8️⃣",
}

func CellGlyph(s mines.CellStatus) string {
	switch {
	case s == mines.Hidden:
		return Placeholder
	case s == mines.Flagged:
		return Flag
	case s == mines.RevealedMine:
		return Mine
	case s.Revealed():
		return numbers[s]
	default:
		return "?"
	}
}

func FaceGlyph(s mines.Status) string {
	switch s {
	case mines.Pressed:
		return FacePressed
	case mines.Lost:
		return FaceLost
	case mines.Won:
		return FaceWon
	default:
		return FaceSmile
	}
}

func Glyphs(cells mines.Grid) []string {
	glyphs := make([]string, len(cells))
	for i, c := range cells {
		glyphs[i] = CellGlyph(c)
	}
	return glyphs
}

// CellRune is the single-column variant for terminals.
func CellRune(s mines.CellStatus) rune {
	switch {
	case s == mines.Hidden:
		return '.'
	case s == mines.Flagged:
		return 'F'
	case s == mines.RevealedMine:
		return '*'
	case s == 0:
		return ' '
	case s.Revealed():
		return rune('0' + s)
	default:
		return '?'
	}
}

func FaceText(s mines.Status) string {
	switch s {
	case mines.Pressed:
		return ":o"
	case mines.Lost:
		return "X("
	case mines.Won:
		return "B)"
	default:
		return ":)"
	}
}
