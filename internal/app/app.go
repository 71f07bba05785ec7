package app

import (
	"context"

	"github.com/NasaVasa/coinsentry/internal/config"
	"github.com/NasaVasa/coinsentry/internal/delivery/telegram"
	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/NasaVasa/coinsentry/internal/i18n"
	"github.com/NasaVasa/coinsentry/internal/infra/coingecko"
	"github.com/NasaVasa/coinsentry/internal/infra/db"
	"github.com/NasaVasa/coinsentry/internal/infra/log"
	"github.com/NasaVasa/coinsentry/internal/scheduler"
	"github.com/NasaVasa/coinsentry/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	driver    *scheduler.Driver
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	catalog, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userStore := db.NewUserStore(dbConn)
	alertStore := db.NewAlertStore(dbConn, logger)

	universe := make([]domain.Asset, 0, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		universe = append(universe, domain.Asset(asset))
	}

	priceSource := coingecko.NewClient(coingecko.Options{
		BaseURL:       cfg.CoinGeckoBaseURL,
		Currency:      cfg.QuoteCurrency,
		Timeout:       cfg.QuoteTimeout,
		MaxRetries:    cfg.QuoteMaxRetries,
		RetryBase:     cfg.QuoteRetryBaseDelay,
		RatePerSecond: cfg.QuoteRatePerSecond,
	}, logger)

	prefs := usecase.NewPrefCache(userStore, cfg.DefaultLocale, logger)
	userUC := usecase.NewUserUsecase(userStore, prefs, catalog, cfg.DefaultLocale)
	alertUC := usecase.NewAlertUsecase(userStore, alertStore, universe, cfg.MaxAlertsPerUser)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, catalog, prefs, cfg.QuoteCurrency, logger)
	checker := usecase.NewCheckerUsecase(priceSource, alertStore, notifier, universe, logger)

	driver := scheduler.New(ctx, logger)
	if err := driver.AddCycle(cfg.CheckInterval, checker.RunCycle); err != nil {
		return nil, err
	}

	handlers := telegram.NewHandlers(userUC, alertUC, checker, prefs, catalog, cfg.QuoteCurrency, cfg.MaxAlertsPerUser, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{bot: bot, driver: driver, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("coinsentry starting")
	a.driver.Start()
	a.logger.Info("coinsentry started")
	return a.bot.Start(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("coinsentry shutting down")
	a.driver.Stop()
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
