package domain

import "time"

// Article is a catalog record as persisted by ingestion.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
}

// Displayable reports whether the article carries a media reference.
func (a Article) Displayable() bool {
	return a.ImageURL != ""
}

// Categories lists the fixed category set articles are ingested under.
var Categories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// ValidCategory reports whether name belongs to Categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
