package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/mines"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsPress   wsCommand = "d"
	wsRelease wsCommand = "u"
	wsReset   wsCommand = "r"
)

var commandNargs = map[wsCommand]int{
	wsNoop:    0,
	wsOpen:    1,
	wsFlag:    1,
	wsPress:   0,
	wsRelease: 0,
	wsReset:   0,
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("argument must be an int")
	}
	return i, nil
}

// executeCommand applies one line of the websocket protocol to game.
func executeCommand(game *mines.GameState, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}

	cmd := wsCommand(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("invalid number of arguments")
	}

	switch cmd {
	case wsNoop:
		return nil
	case wsOpen, wsFlag:
		i, err := parseIndex(parts[1])
		if err != nil {
			return err
		}
		if !game.ValidateIndex(i) {
			return ErrInvalidIndex
		}
		game.PrimaryAction(i, cmd == wsFlag)
	case wsPress:
		game.PressStart()
	case wsRelease:
		game.PressEnd()
	case wsReset:
		game.Reset()
	}
	return nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.ID)
	log.Debug("established WS connection")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var cmdErr error
		snap := s.Do(func(game *mines.GameState) {
			for _, line := range byPiece(text, "\n") {
				if cmdErr = executeCommand(game, line); cmdErr != nil {
					return
				}
			}
		})
		if cmdErr != nil {
			log.WithError(cmdErr).Error("unable to process command")
			if err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseUnsupportedData, cmdErr.Error(),
			)); err != nil {
				log.WithError(err).Warn("unable to write close message")
			}
			return
		}

		if err := c.WriteJSON(NewGameSessionDTO(s.ID, s.StartedAt, snap)); err != nil {
			log.WithError(err).Error("unable to write json")
			break
		}
		log.Debug("\t< <session data>")
	}
}
