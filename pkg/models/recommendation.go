package models

// Recommendation is one AI-suggested title. Rank is list position.
type Recommendation struct {
	Title         string `json:"title"`
	Reason        string `json:"reason"`
	Genre         string `json:"genre"`
	SearchKeyword string `json:"search_keyword"`
}

// RecommendationProfile is the questionnaire the user fills in before
// asking for suggestions.
type RecommendationProfile struct {
	Age          int    `json:"age"`
	Interests    string `json:"interests"`
	Mood         string `json:"mood"`
	ReadingStyle string `json:"reading_style"`
	ContentType  string `json:"content_type"` // anime | manga | books
}
