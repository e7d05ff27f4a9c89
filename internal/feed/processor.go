package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/models"
	"github.com/bilgisen/tldr-relay/internal/utils"
)

// Source retrieves the raw entries of one edition.
type Source interface {
	FetchEdition(ctx context.Context, category models.Category, date string) ([]models.RawEntry, error)
}

// Notifier delivers edition headers and articles.
type Notifier interface {
	PostCategoryHeader(ctx context.Context, category models.Category, date string) error
	PostArticle(ctx context.Context, entry models.NormalizedEntry, category models.Category, date string) error
}

// StateStore is the publication ledger. It never fails from the caller's view.
type StateStore interface {
	ListPostedCategories(ctx context.Context, date string) map[models.Category]struct{}
	MarkPosted(ctx context.Context, category models.Category, date string)
}

type outcome int

const (
	outcomePosted outcome = iota
	outcomeNotYetAvailable
	outcomeEmpty
	outcomeFailed
)

// ProcessorDeps wires the collaborators of a Processor.
type ProcessorDeps struct {
	Source   Source
	Notifier Notifier
	Store    StateStore
	Clock    utils.Clock
	// Categories overrides the processing set; defaults to every category.
	Categories []models.Category
}

// Processor runs one publishing pass: resolve today's date, skip categories
// that already carry a marker, then fetch, post and mark the rest in order.
type Processor struct {
	source     Source
	notifier   Notifier
	store      StateStore
	parser     *Parser
	clock      utils.Clock
	categories []models.Category
	now        func() time.Time
}

func NewProcessor(deps ProcessorDeps) *Processor {
	categories := deps.Categories
	if len(categories) == 0 {
		categories = models.AllCategories()
	}
	return &Processor{
		source:     deps.Source,
		notifier:   deps.Notifier,
		store:      deps.Store,
		parser:     NewParser(),
		clock:      deps.Clock,
		categories: categories,
		now:        time.Now,
	}
}

// Run performs one pass and reports what happened. Per-category failures are
// logged and recorded in the result; they never stop the pass.
func (p *Processor) Run(ctx context.Context) models.RunResult {
	log := logger.Get()
	result := models.RunResult{
		ID:        fmt.Sprintf("%d", p.now().UnixNano()),
		StartedAt: p.now(),
	}

	date, ok := p.clock()
	if !ok {
		log.Info().Msg("No edition on weekends, skipping run")
		result.Status = models.RunSkippedWeekend
		result.FinishedAt = p.now()
		return result
	}
	result.Date = date

	posted := p.store.ListPostedCategories(ctx, date)
	var pending []models.Category
	for _, c := range p.categories {
		if _, done := posted[c]; done {
			result.AlreadyPosted = append(result.AlreadyPosted, c)
			continue
		}
		pending = append(pending, c)
	}

	if len(pending) == 0 {
		log.Info().Str("date", date).Msg("All categories already posted")
		result.Status = models.RunNothingToDo
		result.FinishedAt = p.now()
		return result
	}

	log.Info().
		Str("date", date).
		Int("pending", len(pending)).
		Int("already_posted", len(result.AlreadyPosted)).
		Msg("Starting publishing run")

	for _, category := range pending {
		start := time.Now()
		out, err := p.processCategory(ctx, category, date)

		var event *zerolog.Event
		if err != nil {
			event = log.Error().Err(err)
		} else {
			event = log.Info()
		}
		event.
			Str("category", string(category)).
			Str("date", date).
			Str("outcome", out.String()).
			Dur("duration", time.Since(start)).
			Msg("Processed category")

		switch out {
		case outcomePosted:
			result.Posted = append(result.Posted, category)
		case outcomeNotYetAvailable:
			result.NotYetAvailable = append(result.NotYetAvailable, category)
		case outcomeEmpty:
			result.Empty = append(result.Empty, category)
		default:
			result.Failed = append(result.Failed, category)
		}
	}

	result.Status = models.RunCompleted
	result.FinishedAt = p.now()
	log.Info().
		Str("date", date).
		Int("posted", len(result.Posted)).
		Int("pending", result.Pending()).
		Msg("Finished publishing run")
	return result
}

// processCategory publishes one edition. The marker is written only after the
// header and every entry went out.
func (p *Processor) processCategory(ctx context.Context, category models.Category, date string) (outcome, error) {
	log := logger.Get()

	raw, err := p.source.FetchEdition(ctx, category, date)
	if errors.Is(err, ErrNotPublished) {
		return outcomeNotYetAvailable, nil
	}
	if err != nil {
		return outcomeFailed, fmt.Errorf("fetch edition: %w", err)
	}

	usable, errs := p.parser.FilterEntries(raw)
	if len(errs) > 0 {
		log.Debug().
			Str("category", string(category)).
			Errs("dropped", errs).
			Msg("Dropped unusable entries")
	}
	if len(usable) == 0 {
		return outcomeEmpty, nil
	}

	if err := p.notifier.PostCategoryHeader(ctx, category, date); err != nil {
		return outcomeFailed, err
	}
	for _, entry := range usable {
		if err := p.notifier.PostArticle(ctx, Normalize(entry), category, date); err != nil {
			return outcomeFailed, err
		}
	}

	p.store.MarkPosted(ctx, category, date)
	return outcomePosted, nil
}

func (o outcome) String() string {
	switch o {
	case outcomePosted:
		return "posted"
	case outcomeNotYetAvailable:
		return "not_yet_available"
	case outcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}
