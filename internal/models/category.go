package models

import "strings"

// Category is one of the fixed newsletter topic channels.
type Category string

const (
	CategoryTech     Category = "tech"
	CategoryWebDev   Category = "webdev"
	CategoryAI       Category = "ai"
	CategoryInfoSec  Category = "infosec"
	CategoryProduct  Category = "product"
	CategoryDevOps   Category = "devops"
	CategoryFounders Category = "founders"
	CategoryDesign   Category = "design"
)

// DefaultColor is the Discord blurple accent used when a category has no own color.
const DefaultColor = 0x5865F2

// CategoryInfo holds the static display metadata of a category
type CategoryInfo struct {
	Name  string
	Emoji string
	Color int
}

// categoryOrder fixes the processing order of categories for every run.
var categoryOrder = []Category{
	CategoryTech,
	CategoryWebDev,
	CategoryAI,
	CategoryInfoSec,
	CategoryProduct,
	CategoryDevOps,
	CategoryFounders,
	CategoryDesign,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryTech:     {Name: "TLDR Tech", Emoji: "💻", Color: DefaultColor},
	CategoryWebDev:   {Name: "TLDR Web Dev", Emoji: "🌐", Color: DefaultColor},
	CategoryAI:       {Name: "TLDR AI", Emoji: "🤖", Color: DefaultColor},
	CategoryInfoSec:  {Name: "TLDR InfoSec", Emoji: "🔒", Color: DefaultColor},
	CategoryProduct:  {Name: "TLDR Product", Emoji: "🎯", Color: DefaultColor},
	CategoryDevOps:   {Name: "TLDR DevOps", Emoji: "🔄", Color: DefaultColor},
	CategoryFounders: {Name: "TLDR Founders", Emoji: "🚀", Color: DefaultColor},
	CategoryDesign:   {Name: "TLDR Design", Emoji: "🎨", Color: DefaultColor},
}

// AllCategories returns every known category in processing order.
// The returned slice is a copy and may be modified by the caller.
func AllCategories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory maps a raw string onto a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryInfo[c]
	return c, ok
}

// Info returns the display metadata for the category. Unknown categories get a
// generic name built from the raw value.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Name: "TLDR " + strings.ToUpper(string(c)), Emoji: "📰", Color: DefaultColor}
}

func (c Category) String() string {
	return string(c)
}
