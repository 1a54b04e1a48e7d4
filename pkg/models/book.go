package models

// Book is a normalized Google Books volume.
//
// Missing upstream fields are coerced to sentinels ("N/A", "Unknown",
// placeholder description) at the client, so renderers only ever need
// to special-case AverageRating.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"published_date"`
	Description   string   `json:"description"`
	PageCount     int      `json:"page_count,omitempty"`
	Categories    []string `json:"categories"`
	AverageRating string   `json:"average_rating"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	PreviewLink   string   `json:"preview_link"`
	InfoLink      string   `json:"info_link"`
}
