package handlers

import (
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Width           int     `schema:"width"`
	Height          int     `schema:"height"`
	MineProbability float64 `schema:"mine_probability"`
}

// ParseNewGameDTO decodes the optional game parameters over defaults.
func ParseNewGameDTO(src map[string][]string, defaults mines.GameParams) (mines.GameParams, error) {
	dto := NewGameDTO(defaults)
	err := dec.Decode(&dto, src)
	return mines.GameParams(dto), err
}

type ClickDTO struct {
	Index int  `schema:"index,required"`
	Alt   bool `schema:"alt"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	SessionID string       `json:"session_id"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Status    mines.Status `json:"status"`
	Cells     mines.Grid   `json:"cells"`
	Glyphs    []string     `json:"glyphs"`
	Face      string       `json:"face"`
	Version   uint64       `json:"version"`
	Moves     int          `json:"moves"`
	StartedAt int64        `json:"started_at"`
}

func NewGameSessionDTO(
	sessionID string,
	startedAt time.Time,
	snap mines.Snapshot,
) *GameSessionDTO {
	return &GameSessionDTO{
		SessionID: sessionID,
		Width:     snap.Width,
		Height:    snap.Height,
		Status:    snap.Status,
		Cells:     snap.Cells,
		Glyphs:    render.Glyphs(snap.Cells),
		Face:      render.FaceGlyph(snap.Status),
		Version:   snap.Version,
		Moves:     snap.Moves,
		StartedAt: startedAt.UnixMilli(),
	}
}
