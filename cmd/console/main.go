package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/husham35/AirBnB-clone/internal/adapters/observability"
	"github.com/husham35/AirBnB-clone/internal/app"
	"github.com/husham35/AirBnB-clone/internal/console"
	"github.com/husham35/AirBnB-clone/internal/domain"
	"github.com/husham35/AirBnB-clone/internal/shared"
)

func main() {
	cfg := shared.Load()

	// stdout belongs to the interpreter; logs go to stderr
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := shared.OpenEngine(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("storage open failed")
	}
	defer eng.Close()
	domain.Bind(eng)

	prompt := ""
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		prompt = console.DefaultPrompt
	}
	c := console.New(app.NewObjectService(eng), os.Stdin, os.Stdout, prompt)
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("console failed")
		os.Exit(1)
	}
}
