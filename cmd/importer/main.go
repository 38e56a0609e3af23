package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/husham35/AirBnB-clone/internal/adapters/observability"
	"github.com/husham35/AirBnB-clone/internal/adapters/remote"
	"github.com/husham35/AirBnB-clone/internal/app"
	"github.com/husham35/AirBnB-clone/internal/domain"
	"github.com/husham35/AirBnB-clone/internal/shared"
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classes := cfg.Classes
	if len(classes) == 0 {
		classes = domain.Classes()
	}
	log.Info().
		Str("base", cfg.RemoteBase).
		Int("workers", cfg.Workers).
		Strs("classes", classes).
		Msg("importer starting")

	client, err := remote.New(cfg.RemoteBase, cfg.RemoteKey, cfg.RemoteRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize remote client")
	}
	eng, err := shared.OpenEngine(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("storage open failed")
	}
	domain.Bind(eng)

	imp := app.NewImportService(client, app.NewObjectService(eng))
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var (
		wg     sync.WaitGroup
		total  atomic.Int64
		failed atomic.Int32
	)

	for _, class := range classes {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("import interrupted")
			break
		}

		wg.Add(1)
		go func(class string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := imp.ImportClass(ctx, class)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("class", class).Err(err).Msg("import failed")
				return
			}
			total.Add(int64(n))
			log.Info().Str("class", class).Int("objects", n).Msg("import ok")
		}(class)
	}

	wg.Wait()
	log.Info().Int64("objects", total.Load()).Int32("failed_classes", failed.Load()).Msg("import completed")
	if err := eng.Close(); err != nil {
		log.Warn().Err(err).Msg("storage close failed")
	}
	if failed.Load() > 0 {
		os.Exit(1)
	}
}
