package app

import (
	"context"
	"fmt"

	"github.com/bilgisen/tldr-relay/internal/cache"
	"github.com/bilgisen/tldr-relay/internal/config"
	"github.com/bilgisen/tldr-relay/internal/discord"
	"github.com/bilgisen/tldr-relay/internal/feed"
	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/models"
	"github.com/bilgisen/tldr-relay/internal/state"
	"github.com/bilgisen/tldr-relay/internal/storage"
	"github.com/bilgisen/tldr-relay/internal/utils"
)

// Application wires the configuration to the publishing pipeline. It is shared
// by the HTTP server, the one-shot runner and the Lambda handler.
type Application struct {
	Processor *feed.Processor
	Store     *state.Store
	Reports   *storage.Storage

	ledger cache.Ledger
}

// New builds the application. Errors here are fatal for every entry point.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	ledger, err := NewLedger(cfg)
	if err != nil {
		return nil, err
	}

	store := state.NewStore(ledger, cfg.MarkerTTL)

	var previewer *discord.Previewer
	if cfg.EnrichPreviews {
		previewer = discord.NewPreviewer(cfg.PreviewTimeout)
	}
	notifier := discord.NewNotifier(discord.Options{
		Webhooks:     cfg.Webhooks,
		HeaderDelay:  cfg.HeaderDelay,
		ArticleDelay: cfg.ArticleDelay,
		Timeout:      cfg.HTTPTimeout,
		Previewer:    previewer,
	})

	reports, err := newReports(ctx, cfg)
	if err != nil {
		ledger.Close()
		return nil, err
	}

	processor := feed.NewProcessor(feed.ProcessorDeps{
		Source:   feed.NewFetcher(cfg.SourceBaseURL, cfg.FetchTimeout),
		Notifier: notifier,
		Store:    store,
		Clock:    utils.NewClock(cfg.Location()),
	})

	return &Application{
		Processor: processor,
		Store:     store,
		Reports:   reports,
		ledger:    ledger,
	}, nil
}

// NewLedger opens the marker backend selected by LEDGER_BACKEND.
func NewLedger(cfg *config.Config) (cache.Ledger, error) {
	switch cfg.LedgerBackend {
	case config.LedgerRedis:
		client, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis ledger: %w", err)
		}
		return client, nil
	case config.LedgerUpstash:
		return cache.NewUpstashClient(cfg.UpstashURL, cfg.UpstashToken, cfg.RedisPrefix), nil
	case config.LedgerMemory:
		logger.Get().Warn().Msg("Using in-memory ledger, markers are lost on restart")
		return cache.NewMockRedisClient(cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}

func newReports(ctx context.Context, cfg *config.Config) (*storage.Storage, error) {
	r2 := storage.R2Config{
		Endpoint:  cfg.R2Endpoint,
		AccountID: cfg.R2AccountID,
		AccessKey: cfg.R2AccessKey,
		SecretKey: cfg.R2SecretKey,
		Bucket:    cfg.R2Bucket,
	}

	var mirror storage.Mirror
	if r2.Enabled() {
		m, err := storage.NewR2Mirror(ctx, r2)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize R2 mirror: %w", err)
		}
		mirror = m
	}

	reports, err := storage.NewStorage(cfg.StoragePath, mirror)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}
	return reports, nil
}

// RunOnce performs one publishing pass and archives its report. A report
// that cannot be archived is logged, the result is returned regardless.
func (a *Application) RunOnce(ctx context.Context) models.RunResult {
	result := a.Processor.Run(ctx)

	if _, err := a.Reports.SaveReport(ctx, result); err != nil {
		logger.Get().Error().Err(err).Str("run_id", result.ID).Msg("Error archiving run report")
	}

	logger.Get().Info().
		Str("run_id", result.ID).
		Str("status", string(result.Status)).
		Msg(result.Summary())

	return result
}

// Close releases the ledger connection.
func (a *Application) Close() error {
	return a.ledger.Close()
}
