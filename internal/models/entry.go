package models

// RawEntry is an article block as scraped from an edition page
type RawEntry struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// ContentKind classifies an entry for presentation only.
type ContentKind int

const (
	KindDefault ContentKind = iota
	KindRepository
	KindBook
	KindTool
)

func (k ContentKind) String() string {
	switch k {
	case KindRepository:
		return "repository"
	case KindBook:
		return "book"
	case KindTool:
		return "tool"
	default:
		return "article"
	}
}

// NormalizedEntry is a RawEntry after link, title and summary cleanup.
type NormalizedEntry struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	// ReadMinutes is zero when the title carried no read-time annotation.
	ReadMinutes int         `json:"read_minutes,omitempty"`
	Kind        ContentKind `json:"kind"`
}

// HasReadTime reports whether a read-time annotation was found.
func (e NormalizedEntry) HasReadTime() bool {
	return e.ReadMinutes > 0
}
