package main

import (
	"context"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/tui"
)

var configPath string

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(fmt.Errorf("unable to load config: %w", err))
	}

	// the terminal belongs to the game; logs only go to the log file, if any
	log, err := config.NewLogger(cfg)
	if err != nil {
		fatal(fmt.Errorf("unable to set up logging: %w", err))
	}
	log.SetOutput(io.Discard)
	mines.Log = log

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	game, err := mines.NewGame(cfg.Game.Params(), rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(err)
	}
	if err := screen.Init(); err != nil {
		fatal(err)
	}
	defer screen.Fini()

	log.WithFields(logrus.Fields{
		"params": cfg.Game.Params().String(),
		"seed":   seed,
	}).Info("terminal game started")

	if err := tui.New(screen, game).Run(ctx); err != nil {
		screen.Fini()
		fatal(err)
	}
}
