package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ardhimansyah/catatduit/internal/bot"
	"github.com/ardhimansyah/catatduit/internal/config"
	"github.com/ardhimansyah/catatduit/internal/extract"
	"github.com/ardhimansyah/catatduit/internal/ledger"
	"github.com/ardhimansyah/catatduit/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Long:  `Connects to Telegram and processes the owner's messages until interrupted.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	oracle, err := extract.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("creating gemini client: %w", err)
	}
	extractor := extract.NewExtractor(oracle, logger)

	store, err := ledger.NewSheetsStore(ctx, cfg.LedgerConfig(), logger)
	if err != nil {
		return fmt.Errorf("creating sheets store: %w", err)
	}
	ldg := ledger.New(store, logger)

	prefs, err := storage.OpenPrefStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			logger.Error("closing preference store", "error", err)
		}
	}()

	b, err := bot.New(cfg, extractor, ldg, prefs, logger)
	if err != nil {
		return err
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("bot stopped")
	return nil
}
