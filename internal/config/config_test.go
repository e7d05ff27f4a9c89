package config

import (
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/tldr-relay/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/all")
	t.Setenv("DISCORD_WEBHOOK_AI_URL", "https://discord.com/api/webhooks/2/ai")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LedgerBackend != LedgerRedis || cfg.MarkerTTL != 48*time.Hour {
		t.Errorf("unexpected ledger defaults: %s %v", cfg.LedgerBackend, cfg.MarkerTTL)
	}
	if cfg.ArticleDelay != 1500*time.Millisecond || cfg.HeaderDelay != time.Second {
		t.Errorf("unexpected pacing defaults: %v %v", cfg.HeaderDelay, cfg.ArticleDelay)
	}
	if cfg.Location().String() != "America/Los_Angeles" {
		t.Errorf("unexpected timezone %s", cfg.Location())
	}

	if len(cfg.Webhooks) != len(models.AllCategories()) {
		t.Fatalf("fallback webhook should cover every category, got %d", len(cfg.Webhooks))
	}
	if url, _ := cfg.WebhookFor(models.CategoryAI); url != "https://discord.com/api/webhooks/2/ai" {
		t.Errorf("per-category webhook should win, got %q", url)
	}
	if url, _ := cfg.WebhookFor(models.CategoryTech); url != "https://discord.com/api/webhooks/1/all" {
		t.Errorf("fallback webhook expected, got %q", url)
	}
}

func TestLoadRequiresAWebhook(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	for _, c := range models.AllCategories() {
		t.Setenv("DISCORD_WEBHOOK_"+strings.ToUpper(string(c))+"_URL", "")
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error without any webhook")
	}
}

func TestLoadUpstashNeedsCredentials(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/all")
	t.Setenv("LEDGER_BACKEND", "upstash")
	t.Setenv("KV_REST_API_URL", "https://eu1-example.upstash.io")
	t.Setenv("KV_REST_API_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error without an upstash token")
	}

	t.Setenv("KV_REST_API_TOKEN", "token")
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/all")

	t.Setenv("PUBLISH_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := Load(); err == nil {
		t.Fatal("expected invalid timezone to be rejected")
	}
	t.Setenv("PUBLISH_TIMEZONE", "")

	t.Setenv("LEDGER_BACKEND", "etcd")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown ledger backend to be rejected")
	}
}

func TestDurationFallback(t *testing.T) {
	t.Setenv("MARKER_TTL", "forever")
	if got := getEnvAsDuration("MARKER_TTL", time.Hour); got != time.Hour {
		t.Fatalf("invalid duration should fall back, got %v", got)
	}
}
