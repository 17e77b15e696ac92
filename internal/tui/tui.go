// Package tui draws a game on a terminal and turns mouse and key events into
// game actions.
package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render"
)

const (
	boardTop  = 2
	cellWidth = 2
	faceWidth = 4
)

var (
	styleDefault = tcell.StyleDefault
	styleHidden  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMine    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHint    = [...]tcell.Style{
		tcell.StyleDefault,
		tcell.StyleDefault.Foreground(tcell.ColorBlue),
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorRed),
		tcell.StyleDefault.Foreground(tcell.ColorNavy),
		tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		tcell.StyleDefault.Foreground(tcell.ColorTeal),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
		tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
)

type pressTarget int

const (
	targetNone pressTarget = iota
	targetFace
	targetCell
)

type UI struct {
	screen tcell.Screen
	game   *mines.GameState

	confirming bool

	held    bool
	target  pressTarget
	index   int
	altHeld bool
}

func New(screen tcell.Screen, game *mines.GameState) *UI {
	return &UI{screen: screen, game: game}
}

func (u *UI) Game() *mines.GameState {
	return u.game
}

func (u *UI) Confirming() bool {
	return u.confirming
}

func (u *UI) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func cellStyle(s mines.CellStatus) tcell.Style {
	switch {
	case s == mines.Hidden:
		return styleHidden
	case s == mines.Flagged:
		return styleFlag
	case s == mines.RevealedMine:
		return styleMine
	case s.Revealed():
		return styleHint[s]
	default:
		return styleDefault
	}
}

func (u *UI) Draw() {
	snap := u.game.Snapshot()
	u.screen.Clear()

	u.drawText(0, 0, "["+render.FaceText(snap.Status)+"]", styleDefault)
	if u.confirming {
		u.drawText(faceWidth+1, 0, "New game? (y/n)", styleDefault.Bold(true))
	}

	for y := range snap.Height {
		for x := range snap.Width {
			c := snap.Cells[y*snap.Width+x]
			u.screen.SetContent(x*cellWidth, boardTop+y, render.CellRune(c), nil, cellStyle(c))
		}
	}

	help := "click: reveal  shift/right click: flag  r: new game  q: quit"
	u.drawText(0, boardTop+snap.Height+1, help, styleHidden)

	u.screen.Show()
}

// locate maps a screen position to the face or a board cell.
func (u *UI) locate(x, y int) (pressTarget, int) {
	if y == 0 && 0 <= x && x < faceWidth {
		return targetFace, 0
	}
	col, row := x/cellWidth, y-boardTop
	if x >= 0 && u.game.ValidatePosition(col, row) {
		return targetCell, row*u.game.Width + col
	}
	return targetNone, 0
}

func (u *UI) requestReset() {
	if u.game.Terminal() {
		u.game.Reset()
		return
	}
	u.confirming = true
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary)

	if buttons != 0 && !u.held {
		u.held = true
		u.target, u.index = u.locate(x, y)
		u.altHeld = buttons&tcell.ButtonSecondary != 0 || ev.Modifiers()&tcell.ModShift != 0
		if u.target == targetCell {
			u.game.PressStart()
		}
		return
	}

	if buttons == 0 && u.held {
		u.held = false
		target, index := u.locate(x, y)
		if u.target == targetCell {
			u.game.PressEnd()
		}
		if target != u.target || index != u.index || u.confirming {
			return
		}
		switch target {
		case targetFace:
			u.requestReset()
		case targetCell:
			u.game.PrimaryAction(index, u.altHeld)
		}
	}
}

// HandleEvent applies ev and reports whether the UI should keep running.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			break
		}
		if u.confirming {
			switch ev.Rune() {
			case 'y', 'Y':
				u.confirming = false
				u.game.Reset()
			case 'n', 'N':
				u.confirming = false
			}
			break
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			u.requestReset()
		}
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

// Run draws and processes events until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.screen.Clear()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		u.Draw()
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !u.HandleEvent(ev) {
				return nil
			}
		}
	}
}
