package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// UpstashClient is a Ledger backed by the Upstash Redis REST API.
type UpstashClient struct {
	client *resty.Client
	prefix string
}

var _ Ledger = (*UpstashClient)(nil)

type upstashResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstashClient(restURL, token, prefix string) *UpstashClient {
	return &UpstashClient{
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(restURL, "/")).
			SetAuthToken(token).
			SetTimeout(10 * time.Second),
		prefix: prefix,
	}
}

func (u *UpstashClient) Close() error {
	return nil
}

func (u *UpstashClient) ListPosted(ctx context.Context, date string) ([]string, error) {
	keys, err := u.keys(ctx, date)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(keys))
	for _, key := range keys {
		if c, ok := categoryFromKey(key, u.prefix, date); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (u *UpstashClient) MarkPosted(ctx context.Context, date, category string, ttl time.Duration) error {
	cmd := "/set/" + u.prefix + MarkerKey(date, category) + "/true"
	if secs := int64(ttl / time.Second); secs > 0 {
		cmd += fmt.Sprintf("/EX/%d", secs)
	}

	var out string
	if err := u.do(ctx, cmd, &out); err != nil {
		return err
	}
	if out != "OK" {
		return fmt.Errorf("upstash set returned %q", out)
	}
	return nil
}

func (u *UpstashClient) ClearDate(ctx context.Context, date string) (int, error) {
	keys, err := u.keys(ctx, date)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	var deleted int
	if err := u.do(ctx, "/del/"+strings.Join(keys, "/"), &deleted); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (u *UpstashClient) keys(ctx context.Context, date string) ([]string, error) {
	var keys []string
	if err := u.do(ctx, "/keys/"+u.prefix+markerPattern(date), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// do runs one REST command and decodes its result into out.
func (u *UpstashClient) do(ctx context.Context, cmd string, out interface{}) error {
	var body upstashResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetResult(&body).
		SetError(&body).
		Get(cmd)
	if err != nil {
		return fmt.Errorf("upstash request failed: %w", err)
	}
	if body.Error != "" {
		return fmt.Errorf("upstash error: %s", body.Error)
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status code %d from upstash", resp.StatusCode())
	}
	if err := json.Unmarshal(body.Result, out); err != nil {
		return fmt.Errorf("failed to decode upstash result: %w", err)
	}
	return nil
}
