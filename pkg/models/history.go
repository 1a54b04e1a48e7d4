package models

import "time"

// Search history entry types.
const (
	HistoryCharacterText  = "character_text"
	HistoryCharacterImage = "character_image"
	HistoryAIRecommend    = "ai_recommend"
	HistoryBooksGenre     = "books_genre"
)

// HistoryEntry records one search action. Immutable once appended.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Query     string    `json:"query"`
	Result    string    `json:"result,omitempty"` // optional summary (name, count, ...)
}
