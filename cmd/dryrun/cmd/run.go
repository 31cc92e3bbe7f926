package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/binance"
	"github.com/dryrunbot/dryrun/bot"
	"github.com/dryrunbot/dryrun/journal"
	"github.com/dryrunbot/dryrun/logger"
	"github.com/dryrunbot/dryrun/notify"
	"github.com/dryrunbot/dryrun/state"
	"github.com/dryrunbot/dryrun/strategy"
	"github.com/dryrunbot/dryrun/web"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading loop",
	Long: `Run the paper-trading loop: acquire the state lock, reconcile any
positions left over from a previous process, then check signals and
exits once per interval until interrupted.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	lock, err := state.AcquireLock(cfg.LockPath, time.Now())
	if err != nil {
		return err
	}
	defer lock.Release()

	store := state.NewStore(cfg.StatePath)
	doc, err := store.Load()
	if err != nil {
		return err
	}

	reg, err := strategy.NewRegistry(strategy.BuiltIn()...)
	if err != nil {
		return err
	}

	if state.MigrateCapital(doc, reg.Names()) {
		if err := store.Save(doc, time.Now()); err != nil {
			return err
		}
		log.Info("migrated capital base", logger.String("schema", state.SchemaVersion))
	}

	var j journal.Journal = journal.NewMemory()
	if cfg.Journal.Type == "sqlite" {
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return err
		}
	}
	defer j.Close()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.Enabled {
		notifier = notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
	}

	loop := bot.New(bot.Options{
		Registry:    reg,
		Store:       store,
		Doc:         doc,
		Data:        binance.NewClient(),
		Journal:     j,
		Notifier:    notifier,
		Log:         log,
		Interval:    cfg.CheckInterval.Std(),
		CandleLimit: cfg.CandleLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(cfg.Listen, loop.Snapshot, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("dashboard server failed", logger.Err(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("bot starting",
		logger.Int("strategies", len(reg.Enabled())),
		logger.String("state", cfg.StatePath))
	notifier.Alert(ctx, "🤖 <b>DRYRUN Bot Started</b>")

	if err := loop.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	log.Info("bot stopped")
	return nil
}
