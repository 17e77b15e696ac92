package app

import (
	"net/http"

	"github.com/vancomm/sweeper/internal/handlers"
	"github.com/vancomm/sweeper/web"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.cookies, a.ws, a.config.Game.Params(),
	)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game", game.Fetch)
	a.router.HandleFunc("POST /game/click", game.Click)
	a.router.HandleFunc("POST /game/press", game.Press)
	a.router.HandleFunc("POST /game/release", game.Release)
	a.router.HandleFunc("POST /game/reset", game.Reset)
	a.router.HandleFunc("/game/connect", game.ConnectWS)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	a.router.Handle("GET /", http.FileServer(web.StaticFS()))
}
