package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"TickerBoard/internal/board"
	"TickerBoard/internal/chart"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/config"
	"TickerBoard/internal/notifier"
)

// newFetcher builds the configured data source.
func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	fetcher, err := collector.New(cfg.DataSource.Provider, collector.Options{
		BaseURL:  cfg.DataSource.BaseURL,
		Interval: cfg.DataSource.Interval,
		Range:    cfg.DataSource.Range,
		Timeout:  cfg.DataSource.Timeout,
		Proxy:    cfg.Proxy,
		Format:   collector.LabelFormat{Layout: cfg.Chart.DateLayout, Location: loc},
	})
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")
	return fetcher, nil
}

// newNotifier always logs and additionally posts to Telegram when configured.
func newNotifier(cfg *config.Config) notifier.Notifier {
	if !cfg.TelegramEnabled() {
		return notifier.LogNotifier{}
	}
	log.Info().Msg("telegram alerts enabled")
	return notifier.Multi{
		notifier.LogNotifier{},
		notifier.NewTelegramNotifier(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy),
	}
}

// newBoard wires fetcher, renderer and notifier into the stock chart controller.
func newBoard(cfg *config.Config) (*board.Controller, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	renderer := chart.NewRenderer(cfg.Chart.Canvas, cfg.Chart.Width, cfg.Chart.Height)
	return board.NewController(fetcher, renderer, newNotifier(cfg)), nil
}
