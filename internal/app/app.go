package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/makskhv21/bot-weather/internal/config"
	"github.com/makskhv21/bot-weather/internal/scheduler"
	"github.com/makskhv21/bot-weather/internal/store"
	"github.com/makskhv21/bot-weather/internal/telegram"
	"github.com/makskhv21/bot-weather/internal/weather"
)

type App struct {
	cfg      config.Config
	log      *zap.Logger
	bot      *tgbotapi.BotAPI
	httpSrv  *http.Server
	registry *store.MemoryRegistry
	gateway  *weather.Client
	router   *telegram.Router
	sched    *scheduler.Scheduler
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	registry := store.NewMemoryRegistry()
	gateway := weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, log)
	router := telegram.NewRouter(bot, log, registry, gateway)
	sched := scheduler.New(registry, gateway, router, log, cfg.TickInterval)

	return &App{
		cfg:      cfg,
		log:      log,
		bot:      bot,
		httpSrv:  srv,
		registry: registry,
		gateway:  gateway,
		router:   router,
		sched:    sched,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting weather bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick", a.cfg.TickInterval),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	// The scheduler stops when ctx is canceled; no notification may fire
	// after teardown begins.
	go a.sched.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
