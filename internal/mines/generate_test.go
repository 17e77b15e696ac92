package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{"1x1(0)", GameParams{Width: 1, Height: 1, MineProbability: 0}},
		{"1x1(1)", GameParams{Width: 1, Height: 1, MineProbability: 1}},
		{"9x9(.1)", GameParams{Width: 9, Height: 9, MineProbability: 0.1}},
		{"15x15(.2)", DefaultParams()},
		{"30x16(.5)", GameParams{Width: 30, Height: 16, MineProbability: 0.5}},
		{"1x40(.3)", GameParams{Width: 1, Height: 40, MineProbability: 0.3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			w, h, mp := test.params.Width, test.params.Height, test.params.MineProbability
			for range 50 {
				layout := Generate(w, h, mp, r)
				require.Len(t, layout, w*h)
				for i, c := range layout {
					assert.True(t, c == Mine || 0 <= c && c <= 8,
						"cell %d has invalid value %d", i, c)
				}
			}
		})
	}
}

func TestGenerateHintsMatchNeighbours(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		w, h := 1+r.IntN(12), 1+r.IntN(12)
		layout := Generate(w, h, r.Float64(), r)
		for y := range h {
			for x := range w {
				c := layout[y*w+x]
				if c == Mine {
					continue
				}
				want := 0
				for yy := max(0, y-1); yy <= min(h-1, y+1); yy++ {
					for xx := max(0, x-1); xx <= min(w-1, x+1); xx++ {
						if (xx != x || yy != y) && layout[yy*w+xx] == Mine {
							want++
						}
					}
				}
				require.Equal(t, Cell(want), c, "%dx%d @ %d:%d", w, h, x, y)
			}
		}
	}
}

func TestGenerateProbabilityExtremes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	none := Generate(4, 3, 0, r)
	assert.Equal(t, 0, none.MineCount())
	for _, c := range none {
		assert.Equal(t, Cell(0), c)
	}

	full := Generate(4, 3, 1, r)
	assert.Equal(t, 12, full.MineCount())
}

func TestGenerateEmpty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	assert.Empty(t, Generate(0, 5, 0.2, r))
	assert.Empty(t, Generate(5, 0, 0.2, r))
}

func TestGenerateAssertions(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	assert.PanicsWithValue(t, AssertionError{"negative grid dimensions"}, func() {
		Generate(-1, 3, 0.2, r)
	})
	assert.PanicsWithValue(t, AssertionError{"mine probability out of range"}, func() {
		Generate(3, 3, 1.5, r)
	})
	assert.EqualError(t, AssertionError{"negative grid dimensions"},
		"mines: assertion failed: negative grid dimensions")
}

func TestParamsString(t *testing.T) {
	p := GameParams{Width: 9, Height: 7, MineProbability: 0.25}
	assert.Equal(t, "9:7:0.25", p.String())

	parsed, err := ParseParams(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, *parsed)

	_, err = ParseParams("9:7")
	assert.Error(t, err)
	_, err = ParseParams("0:7:0.2")
	assert.ErrorIs(t, err, ErrBadDimensions)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		params GameParams
		err    error
	}{
		{DefaultParams(), nil},
		{GameParams{Width: 0, Height: 3}, ErrBadDimensions},
		{GameParams{Width: 3, Height: -1}, ErrBadDimensions},
		{GameParams{Width: 3, Height: 3, MineProbability: -0.1}, ErrBadProbability},
		{GameParams{Width: 3, Height: 3, MineProbability: 1.1}, ErrBadProbability},
	}
	for _, test := range tests {
		assert.Equal(t, test.err, test.params.Validate(), "%+v", test.params)
	}
}
