package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bilgisen/tldr-relay/internal/cache"
	"github.com/bilgisen/tldr-relay/internal/models"
)

type brokenLedger struct {
	marks int
}

func (b *brokenLedger) ListPosted(ctx context.Context, date string) ([]string, error) {
	return nil, errors.New("connection refused")
}

func (b *brokenLedger) MarkPosted(ctx context.Context, date, category string, ttl time.Duration) error {
	b.marks++
	return errors.New("connection refused")
}

func (b *brokenLedger) ClearDate(ctx context.Context, date string) (int, error) {
	return 0, errors.New("connection refused")
}

func (b *brokenLedger) Close() error { return nil }

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger := cache.NewMockRedisClient("tldr:")
	s := NewStore(ledger, 24*time.Hour)

	s.MarkPosted(ctx, models.CategoryTech, "2025-06-03")
	s.MarkPosted(ctx, models.CategoryTech, "2025-06-03")
	s.MarkPosted(ctx, models.CategoryDesign, "2025-06-02")

	posted := s.ListPostedCategories(ctx, "2025-06-03")
	if len(posted) != 1 {
		t.Fatalf("expected one posted category, got %v", posted)
	}
	if _, ok := posted[models.CategoryTech]; !ok {
		t.Fatalf("tech should be posted, got %v", posted)
	}

	ttl, ok := ledger.TTL("2025-06-03", "tech")
	if !ok || ttl <= 0 || ttl > 24*time.Hour {
		t.Fatalf("marker should carry the retention ttl, got %v", ttl)
	}
}

func TestStoreIgnoresUnknownCategories(t *testing.T) {
	ctx := context.Background()
	ledger := cache.NewMockRedisClient("")
	_ = ledger.MarkPosted(ctx, "2025-06-03", "sports", time.Hour)
	_ = ledger.MarkPosted(ctx, "2025-06-03", "ai", time.Hour)

	posted := NewStore(ledger, 0).ListPostedCategories(ctx, "2025-06-03")
	if len(posted) != 1 {
		t.Fatalf("expected only ai, got %v", posted)
	}
}

func TestStoreDegradesOnLedgerFailure(t *testing.T) {
	ctx := context.Background()
	ledger := &brokenLedger{}
	s := NewStore(ledger, time.Hour)

	if posted := s.ListPostedCategories(ctx, "2025-06-03"); len(posted) != 0 {
		t.Fatalf("failed read should yield an empty set, got %v", posted)
	}

	// Must not panic or surface the error.
	s.MarkPosted(ctx, models.CategoryAI, "2025-06-03")
	if ledger.marks != 1 {
		t.Fatalf("expected one mark attempt, got %d", ledger.marks)
	}
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewStore(cache.NewMockRedisClient(""), time.Hour)
	s.MarkPosted(ctx, models.CategoryAI, "2025-06-03")

	n, err := s.Reset(ctx, "2025-06-03")
	if err != nil || n != 1 {
		t.Fatalf("Reset = %d, %v", n, err)
	}
	if posted := s.ListPostedCategories(ctx, "2025-06-03"); len(posted) != 0 {
		t.Fatalf("expected no markers after reset, got %v", posted)
	}
}
