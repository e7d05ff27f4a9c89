package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/models"
)

// ErrNoWebhook is returned when a category has no configured webhook.
var ErrNoWebhook = errors.New("no webhook configured for category")

// Default pauses after each post, below Discord's per-webhook rate limit.
const (
	DefaultHeaderDelay  = time.Second
	DefaultArticleDelay = 1500 * time.Millisecond
)

// Options configures a Notifier
type Options struct {
	// Webhooks maps each category to its webhook URL.
	Webhooks     map[models.Category]string
	HeaderDelay  time.Duration
	ArticleDelay time.Duration
	Timeout      time.Duration
	// Previewer, when set, adds article thumbnails.
	Previewer *Previewer
}

// Notifier posts edition headers and articles to per-category Discord webhooks.
// Calls are meant to be made one at a time; each returns only after its pause.
type Notifier struct {
	client       *resty.Client
	webhooks     map[models.Category]string
	headerDelay  time.Duration
	articleDelay time.Duration
	previewer    *Previewer
	sleep        func(ctx context.Context, d time.Duration) error
	now          func() time.Time
}

func NewNotifier(opts Options) *Notifier {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HeaderDelay <= 0 {
		opts.HeaderDelay = DefaultHeaderDelay
	}
	if opts.ArticleDelay <= 0 {
		opts.ArticleDelay = DefaultArticleDelay
	}

	webhooks := make(map[models.Category]string, len(opts.Webhooks))
	for c, url := range opts.Webhooks {
		webhooks[c] = url
	}

	return &Notifier{
		client: resty.New().
			SetTimeout(opts.Timeout).
			SetHeader("Content-Type", "application/json"),
		webhooks:     webhooks,
		headerDelay:  opts.HeaderDelay,
		articleDelay: opts.ArticleDelay,
		previewer:    opts.Previewer,
		sleep:        sleepContext,
		now:          time.Now,
	}
}

// PostCategoryHeader announces the edition of category for date.
func (n *Notifier) PostCategoryHeader(ctx context.Context, category models.Category, date string) error {
	if err := n.send(ctx, category, headerPayload(category, date)); err != nil {
		return fmt.Errorf("post %s header: %w", category, err)
	}
	return n.sleep(ctx, n.headerDelay)
}

// PostArticle publishes one normalized entry of category.
func (n *Notifier) PostArticle(ctx context.Context, entry models.NormalizedEntry, category models.Category, date string) error {
	var thumbnail string
	if n.previewer != nil {
		thumbnail = n.previewer.Image(ctx, entry.Link)
	}

	payload := articlePayload(entry, category, date, thumbnail, n.now())
	if err := n.send(ctx, category, payload); err != nil {
		return fmt.Errorf("post %s article %q: %w", category, entry.Title, err)
	}
	return n.sleep(ctx, n.articleDelay)
}

func (n *Notifier) send(ctx context.Context, category models.Category, payload webhookPayload) error {
	url, ok := n.webhooks[category]
	if !ok || url == "" {
		return ErrNoWebhook
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}

	if !resp.IsSuccess() {
		logger.Get().Warn().
			Str("category", string(category)).
			Int("status", resp.StatusCode()).
			Str("retry_after", resp.Header().Get("Retry-After")).
			Msg("Webhook rejected message")
		return fmt.Errorf("unexpected status code %d from webhook", resp.StatusCode())
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
