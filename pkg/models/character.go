package models

import "time"

// Character is the normalized form of a Jikan character entry.
//
// Everything the pages need is flattened here so presentation code
// never walks the raw API envelope.
type Character struct {
	MalID     int    `json:"mal_id"`
	Name      string `json:"name"`
	NameKanji string `json:"name_kanji,omitempty"`
	ImageURL  string `json:"image_url"`
	Favorites int    `json:"favorites"`
	About     string `json:"about,omitempty"`
}

// FavoriteCharacter is the copy stored in a session's favorites list.
// It is independent of the fetched Character it was built from.
type FavoriteCharacter struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Favorites int       `json:"favorites"`
	AddedDate time.Time `json:"added_date"`
}
