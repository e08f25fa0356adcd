package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dailynotesbot/internal/bot"
	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/config"
	"dailynotesbot/internal/index"
	"dailynotesbot/internal/neural"
	"dailynotesbot/internal/notes"
	"dailynotesbot/internal/state"
	"dailynotesbot/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot with the vault watcher and periodic index sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cfg.Token == "" {
			return fmt.Errorf("token (or BOT_TOKEN) must be set to serve")
		}

		db, err := index.Open(cfg.IndexPath)
		if err != nil {
			return err
		}
		defer db.Close()

		clk := clock.New(cfg.OffsetHours, cfg.DayStartHour)
		store := notes.NewStore(cfg.DailyDir(), cfg.TemplatePath(), clk)
		states := state.NewManager(clk)
		idx := index.NewIndexer(db, logger)

		if err := idx.Sync(cfg.DailyDir()); err != nil {
			logger.Warn("initial sync failed", zap.Error(err))
		}

		var ai *neural.Client
		if cfg.AIEnabled() {
			ai = neural.NewClient(cfg.OllamaURL, cfg.OllamaModel)
			logger.Info("ollama integration enabled", zap.String("model", ai.Model))
		}

		b, err := bot.New(bot.Config{Token: cfg.Token, RootID: cfg.RootID}, store, states, db, ai, clk, logger)
		if err != nil {
			return fmt.Errorf("bot init failed: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		resync := func() {
			if err := idx.Sync(cfg.DailyDir()); err != nil {
				logger.Warn("sync failed", zap.Error(err))
			}
		}

		w, err := watch.New(cfg.DailyDir(), resync, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					resync()
				}
			}
		}()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down")
			b.Stop()
		}()

		b.Start()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
