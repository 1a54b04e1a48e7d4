package models

// MediaItem is a normalized anime or manga entry used by the discovery
// and recommendation pages. It lives only as long as one response.
type MediaItem struct {
	Title         string   `json:"title"`
	TitleJapanese string   `json:"title_japanese,omitempty"`
	Score         float64  `json:"score,omitempty"`
	Episodes      int      `json:"episodes,omitempty"` // anime only
	Chapters      int      `json:"chapters,omitempty"` // manga only
	Genres        []string `json:"genres,omitempty"`
	Synopsis      string   `json:"synopsis,omitempty"`
	URL           string   `json:"url,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Year          string   `json:"year,omitempty"` // aired/published start year
}
