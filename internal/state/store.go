// Package state records which categories have been fully published on a given
// day. Every failure of the underlying ledger is logged and absorbed: an
// unreadable ledger reads as "nothing posted", a failed write is dropped.
package state

import (
	"context"
	"time"

	"github.com/bilgisen/tldr-relay/internal/cache"
	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/models"
)

// DefaultRetention is how long a marker lives when no retention is configured.
const DefaultRetention = 48 * time.Hour

// Store is the publication ledger used by the processor.
type Store struct {
	ledger    cache.Ledger
	retention time.Duration
}

func NewStore(ledger cache.Ledger, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{ledger: ledger, retention: retention}
}

// ListPostedCategories returns the categories marked as posted for date.
// On failure it returns an empty set.
func (s *Store) ListPostedCategories(ctx context.Context, date string) map[models.Category]struct{} {
	log := logger.Get()
	posted := make(map[models.Category]struct{})

	raw, err := s.ledger.ListPosted(ctx, date)
	if err != nil {
		log.Error().
			Err(err).
			Str("date", date).
			Msg("Error listing posted categories, treating all as pending")
		return posted
	}

	for _, name := range raw {
		c, ok := models.ParseCategory(name)
		if !ok {
			log.Warn().
				Str("date", date).
				Str("category", name).
				Msg("Ignoring marker for unknown category")
			continue
		}
		posted[c] = struct{}{}
	}

	log.Debug().
		Str("date", date).
		Int("posted", len(posted)).
		Msg("Loaded posted categories")
	return posted
}

// MarkPosted records that category has been fully published for date.
func (s *Store) MarkPosted(ctx context.Context, category models.Category, date string) {
	if err := s.ledger.MarkPosted(ctx, date, string(category), s.retention); err != nil {
		logger.Get().Error().
			Err(err).
			Str("date", date).
			Str("category", string(category)).
			Msg("Error marking category as posted")
		return
	}

	logger.Get().Info().
		Str("date", date).
		Str("category", string(category)).
		Dur("ttl", s.retention).
		Msg("Marked category as posted")
}

// Reset removes every marker of date so the next run posts it again.
func (s *Store) Reset(ctx context.Context, date string) (int, error) {
	return s.ledger.ClearDate(ctx, date)
}
