package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/subosito/gotenv"

	"github.com/Spok95/whiplash-bot/internal/bot"
	"github.com/Spok95/whiplash-bot/internal/config"
	"github.com/Spok95/whiplash-bot/internal/dialog"
	"github.com/Spok95/whiplash-bot/internal/domain/finance"
	"github.com/Spok95/whiplash-bot/internal/domain/inventory"
	"github.com/Spok95/whiplash-bot/internal/domain/payroll"
	httpx "github.com/Spok95/whiplash-bot/internal/infra/http"
	"github.com/Spok95/whiplash-bot/internal/infra/logger"
	"github.com/Spok95/whiplash-bot/internal/scheduler"
	"github.com/Spok95/whiplash-bot/internal/store"
	"github.com/Spok95/whiplash-bot/internal/store/postgres"
	"github.com/Spok95/whiplash-bot/internal/store/sqlite"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.KV, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if err := runMigrations(cfg.Storage.DSN); err != nil {
			return nil, nil, err
		}
		log.Info("migrations applied")
		st, err := postgres.Connect(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		st, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	}
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if cfg.App.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
			time.Local = loc
		} else {
			log.Warn("bad timezone, using system local", "tz", cfg.App.Timezone)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store open failed", "err", err)
		return
	}
	defer closeStore()
	log.Info("store ready", "driver", cfg.Storage.Driver)

	ledger := finance.NewLedger(kv, log)
	ledger.Load(ctx)
	sheet := inventory.NewSheet(kv, log)
	sheet.Load(ctx, time.Now())
	roster := payroll.NewRoster(kv, log, decimal.NewFromFloat(cfg.Payroll.MinimumWage))
	roster.Load(ctx)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("authorized", "bot", api.Self.UserName)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	b := bot.New(api, log, dialog.NewRepo(kv), cfg.Telegram.AdminChatID, ledger, sheet, roster)

	sched := scheduler.New(log)
	if cfg.Summary.Enabled {
		if err := sched.AddJob(cfg.Summary.Cron, "daily-summary", b.SendDailySummary); err != nil {
			log.Error("bad summary cron spec", "err", err)
			return
		}
		sched.Start()
		defer sched.Stop()
	}

	if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
