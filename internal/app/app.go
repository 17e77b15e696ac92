package app

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

type App struct {
	log     *logrus.Logger
	config  *config.Config
	router  *http.ServeMux
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket
}

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func New(log *logrus.Logger, c *config.Config) (*App, error) {
	jwt, err := config.NewJWT(c.Session.Secret, c.Session.TTL.Duration)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:     log,
		config:  c,
		router:  http.NewServeMux(),
		store:   session.NewStore(log, createRand(c.Game.Seed)),
		cookies: config.NewCookies(c.Cookies, jwt),
		ws:      config.NewWebSocket(),
	}
	a.loadRoutes()

	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Session(a.cookies),
		middleware.Cors(a.config.Development()),
		middleware.Logging(a.log),
	)
}

// Run serves until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.config.Addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.Janitor(gCtx,
			a.config.Session.SweepEvery.Duration,
			a.config.Session.TTL.Duration,
		)
	})

	return g.Wait()
}
