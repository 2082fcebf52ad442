// cmd/scorer/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/cache"
	"github.com/deliciae/discovery-core/internal/config"
	"github.com/deliciae/discovery-core/internal/database"
	"github.com/deliciae/discovery-core/internal/logger"
	"github.com/deliciae/discovery-core/internal/repository"
	"github.com/deliciae/discovery-core/internal/scheduler"
	"github.com/deliciae/discovery-core/internal/services"
)

// passTimeout bounds a single recompute pass.
const passTimeout = 10 * time.Minute

func main() {
	once := flag.Bool("once", false, "run a single recompute pass and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		logrus.WithError(err).Fatal("Scorer failed")
	}
}

// highlightsInvalidator returns nil unless the view cache is Redis. The
// in-process fallback is private to each process, so clearing it here would
// not reach the API.
func highlightsInvalidator(cfg config.RedisConfig, discovery *services.DiscoveryService) services.Invalidator {
	if !cfg.Enabled {
		logrus.WithField("ttl", cfg.HighlightsTTL()).
			Warn("Redis disabled, API highlights refresh only when their cache entry expires")
		return nil
	}
	return discovery
}

func run(once bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Configure(cfg.Environment, cfg.LogLevel)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	viewCache, err := cache.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize view cache: %w", err)
	}
	defer viewCache.Close()

	catalogRepo := repository.NewCatalogRepository(db)
	discoveryService := services.NewDiscoveryService(catalogRepo, viewCache, cfg.Redis.HighlightsTTL())
	scoringService := services.NewScoringService(catalogRepo, repository.NewEventRepository(db),
		highlightsInvalidator(cfg.Redis, discoveryService),
		services.ScoringConfig{
			Workers:        cfg.Scoring.Workers,
			SelloutHorizon: cfg.Scoring.SelloutHorizon(),
		})

	sched, err := scheduler.New(cfg.Scoring.CronSpec, scoringService, cfg.Scoring.Window(), passTimeout)
	if err != nil {
		return err
	}

	if once {
		_, err := sched.RunOnce(context.Background())
		return err
	}

	sched.Start()
	logrus.WithFields(logrus.Fields{
		"schedule": cfg.Scoring.CronSpec,
		"next_run": sched.Next(),
	}).Info("Scorer started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Stopping scorer, waiting for the running pass...")
	<-sched.Stop().Done()
	logrus.Info("Scorer exited")
	return nil
}
