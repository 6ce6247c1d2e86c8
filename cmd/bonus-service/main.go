package main

import (
	"fmt"
	"os"

	"github.com/okris/salary-bonus/internal/archive"
	"github.com/okris/salary-bonus/internal/auth"
	"github.com/okris/salary-bonus/internal/calendar"
	"github.com/okris/salary-bonus/internal/config"
	"github.com/okris/salary-bonus/internal/db"
	"github.com/okris/salary-bonus/internal/excel"
	httphandler "github.com/okris/salary-bonus/internal/http"
	"github.com/okris/salary-bonus/internal/http/middleware"
	"github.com/okris/salary-bonus/internal/logger"
	"github.com/okris/salary-bonus/internal/notify"
	"github.com/okris/salary-bonus/internal/pdf"
	"github.com/okris/salary-bonus/internal/repository"
	"github.com/okris/salary-bonus/internal/scheduler"
	"github.com/okris/salary-bonus/internal/scoring"
	"github.com/okris/salary-bonus/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	runRepo := repository.NewRunRepository(database)

	scoringCfg := scoring.DefaultConfig()
	scoringCfg.DaysPerPoint = cfg.Bonus.DaysPerPoint
	scoringCfg.OverrunCoefficient = cfg.Bonus.OverrunCoefficient
	scoringCfg.CorrectionFactor = cfg.Bonus.CorrectionFactor
	scorer := scoring.NewScorer(scoringCfg, calendar.NewRussia())

	pdfGenerator, err := pdf.NewGenerator(cfg.Bonus.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	var notifier notify.Notifier
	if cfg.Telegram.Token != "" {
		notifier, err = notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init telegram notifier")
		}
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	bonusService := service.NewBonusService(
		runRepo,
		archive.NewReader(cfg.Bonus.ArchivePath),
		archive.NewOverrideReader(cfg.Bonus.OverridesPath),
		scorer,
		excel.NewGenerator(),
		pdfGenerator,
		notifier,
		cfg,
		log,
	)

	runScheduler, err := scheduler.New(cfg.Schedule.CronSpec, cfg.Schedule.Timezone, bonusService.RunScheduled, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init scheduler")
	}
	runScheduler.Start()
	defer runScheduler.Stop()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(bonusService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting bonus service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
