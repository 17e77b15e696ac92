package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

var (
	ErrNoSession    = errors.New("no game in progress, start one with POST /game")
	ErrInvalidIndex = errors.New("invalid cell index")
)

type GameHandler struct {
	log      logrus.FieldLogger
	store    *session.Store
	cookies  *config.Cookies
	ws       *config.WebSocket
	defaults mines.GameParams
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	cookies *config.Cookies,
	ws *config.WebSocket,
	defaults mines.GameParams,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		store:    store,
		cookies:  cookies,
		ws:       ws,
		defaults: defaults,
	}

	return handler
}

// session resolves the caller's game from the session cookie. On failure the
// response has already been written.
func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoSession)
		return nil, false
	}
	s, err := g.store.Get(claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		g.cookies.Clear(w)
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoSession)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return s, true
}

func (g GameHandler) reply(w http.ResponseWriter, s *session.Session, snap mines.Snapshot) {
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s.ID, s.StartedAt, snap))
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err := params.Validate(); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	if claims, ok := middleware.SessionClaims(r); ok {
		g.store.Delete(claims.SessionID)
	}

	s, err := g.store.Create(params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create a new game")
		return
	}

	if err := g.cookies.Refresh(w, s.ID); err != nil {
		g.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to set session cookie")
		return
	}

	g.reply(w, s, s.Snapshot())
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.reply(w, s, s.Snapshot())
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, ok := g.session(w, r)
	if !ok {
		return
	}

	valid := true
	snap := s.Do(func(game *mines.GameState) {
		if valid = game.ValidateIndex(dto.Index); valid {
			game.PrimaryAction(dto.Index, dto.Alt)
		}
	})
	if !valid {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, ErrInvalidIndex)
		return
	}

	if snap.Status.Terminal() {
		g.log.WithFields(logrus.Fields{
			"session": s.ID,
			"status":  snap.Status,
			"moves":   snap.Moves,
		}).Info("game over")
	}

	g.reply(w, s, snap)
}

func (g GameHandler) Press(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.reply(w, s, s.Do((*mines.GameState).PressStart))
}

func (g GameHandler) Release(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.reply(w, s, s.Do((*mines.GameState).PressEnd))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	g.reply(w, s, s.Do((*mines.GameState).Reset))
}
