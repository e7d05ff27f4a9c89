package discord

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bilgisen/tldr-relay/internal/models"
)

// Discord embed limits
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
)

// LogoURL is used as webhook avatar and embed author icon.
const LogoURL = "https://tldr.tech/logo-jpg.jpg"

type webhookPayload struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url,omitempty"`
	Color       int             `json:"color,omitempty"`
	Author      *embedAuthor    `json:"author,omitempty"`
	Fields      []embedField    `json:"fields,omitempty"`
	Footer      *embedFooter    `json:"footer,omitempty"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
}

type embedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

// kindStyle is the presentation of a content kind
type kindStyle struct {
	label string
	color int
}

var kindStyles = map[models.ContentKind]kindStyle{
	models.KindRepository: {label: "📦 GitHub Repository", color: 0x24292E},
	models.KindBook:       {label: "📖 Book", color: 0xFEE75C},
	models.KindTool:       {label: "🛠️ Tool", color: 0x57F287},
}

func headerPayload(category models.Category, date string) webhookPayload {
	info := category.Info()
	return webhookPayload{
		Content:   fmt.Sprintf("%s **%s - %s**\n*Today's top stories and insights*", info.Emoji, info.Name, date),
		Username:  info.Name,
		AvatarURL: LogoURL,
	}
}

func articlePayload(entry models.NormalizedEntry, category models.Category, date, thumbnail string, now time.Time) webhookPayload {
	info := category.Info()

	readTime := "N/A"
	if entry.HasReadTime() {
		readTime = fmt.Sprintf("%d minutes", entry.ReadMinutes)
	}

	e := embed{
		Title:       truncate(entry.Title, maxTitleLen),
		Description: truncate(entry.Summary, maxDescriptionLen),
		URL:         entry.Link,
		Color:       info.Color,
		Author:      &embedAuthor{Name: info.Name, IconURL: LogoURL},
		Fields: []embedField{
			{Name: "📚 Category", Value: info.Name, Inline: true},
			{Name: "⏱️ Read Time", Value: readTime, Inline: true},
		},
		Footer:    &embedFooter{Text: fmt.Sprintf("%s %s • %s", info.Emoji, info.Name, date)},
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	if style, ok := kindStyles[entry.Kind]; ok {
		e.Color = style.color
		e.Fields = append(e.Fields, embedField{Name: "🏷️ Type", Value: style.label, Inline: true})
	}
	if thumbnail != "" {
		e.Thumbnail = &embedThumbnail{URL: thumbnail}
	}

	return webhookPayload{
		Username:  info.Name,
		AvatarURL: LogoURL,
		Embeds:    []embed{e},
	}
}

// truncate caps s at max runes, ending with an ellipsis when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
