package mines

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	DefaultWidth           = 15
	DefaultHeight          = 15
	DefaultMineProbability = 0.2
)

type GameParams struct {
	Width, Height   int
	MineProbability float64
}

func DefaultParams() GameParams {
	return GameParams{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MineProbability: DefaultMineProbability,
	}
}

func (p GameParams) Size() int {
	return p.Width * p.Height
}

var (
	ErrBadDimensions  = errors.New("width and height must be positive")
	ErrBadProbability = errors.New("mine probability must be within [0, 1]")
)

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrBadDimensions
	}
	if !(0 <= p.MineProbability && p.MineProbability <= 1) {
		return ErrBadProbability
	}
	return nil
}

func (p GameParams) ValidateIndex(i int) bool {
	return 0 <= i && i < p.Size()
}

func (p GameParams) ValidatePosition(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// String formats p as "width:height:probability", the form [ParseParams] reads.
func (p GameParams) String() string {
	return fmt.Sprintf("%d:%d:%s",
		p.Width, p.Height, strconv.FormatFloat(p.MineProbability, 'g', -1, 64),
	)
}

func ParseParams(s string) (*GameParams, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf(`invalid game params "%s"`, s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid width in params: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid height in params: %w", err)
	}
	mp, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid mine probability in params: %w", err)
	}
	p := &GameParams{Width: w, Height: h, MineProbability: mp}
	return p, p.Validate()
}

// Generate places a mine on every cell independently with probability mp and
// fills the rest with neighbour counts.
//
// panics [AssertionError]
func Generate(width, height int, mp float64, r *rand.Rand) Layout {
	if width < 0 || height < 0 {
		panic(AssertionError{"negative grid dimensions"})
	}
	if !(0 <= mp && mp <= 1) {
		panic(AssertionError{"mine probability out of range"})
	}

	layout := make(Layout, width*height)
	for i := range layout {
		if r.Float64() < mp {
			layout[i] = Mine
		}
	}

	for i := range layout {
		if layout[i] != Mine {
			layout[i] = Cell(countMines(layout, width, height, i))
		}
	}

	return layout
}

func countMines(layout Layout, width, height, i int) int {
	x, y := i%width, i/width
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) &&
				0 <= xx && xx < width && 0 <= yy && yy < height &&
				layout[yy*width+xx].IsMine() {
				n++
			}
		}
	}
	return n
}
