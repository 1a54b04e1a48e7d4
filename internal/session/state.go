// Package session holds per-browser state for the lifetime of one
// visit: favorites, search history, the last search and its results,
// and the current recommendations. Nothing here survives the session.
package session

import (
	"sync"
	"time"

	"itooklib/pkg/models"
)

// History keeps the 50 most recent entries, newest first.
const maxHistory = 50

// State is one session's mutable bag of page state. All mutation goes
// through methods so every write point is enumerable.
type State struct {
	mu sync.Mutex

	favorites         []models.FavoriteCharacter
	history           []models.HistoryEntry
	lastSearchQuery   string
	searchResults     []models.Character
	selectedCharacter *models.Character
	showCharacterList bool
	recommendations   []models.Recommendation
	contentType       string

	lastSeen time.Time
}

func newState() *State {
	return &State{
		contentType: "anime",
		lastSeen:    time.Now(),
	}
}

// AddFavorite inserts a favorites copy of a character. Only the
// "characters" item type is accepted; anything else reports false.
// Insertion is idempotent by id.
func (s *State) AddFavorite(itemType string, fav models.FavoriteCharacter) bool {
	if itemType != "characters" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.favorites {
		if existing.ID == fav.ID {
			return false
		}
	}
	fav.AddedDate = time.Now()
	s.favorites = append(s.favorites, fav)
	return true
}

// RemoveFavorite drops the entry with the given id, if present.
func (s *State) RemoveFavorite(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.favorites[:0]
	for _, fav := range s.favorites {
		if fav.ID != id {
			kept = append(kept, fav)
		}
	}
	s.favorites = kept
}

func (s *State) Favorites() []models.FavoriteCharacter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FavoriteCharacter, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// AddHistory prepends an entry and truncates to the newest 50.
func (s *State) AddHistory(searchType, query, result string) {
	entry := models.HistoryEntry{
		Timestamp: time.Now(),
		Type:      searchType,
		Query:     query,
		Result:    result,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append([]models.HistoryEntry{entry}, s.history...)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
}

func (s *State) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *State) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// SetSearchResults replaces the result list wholesale and clears any
// prior selection.
func (s *State) SetSearchResults(query string, results []models.Character) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSearchQuery = query
	s.searchResults = results
	s.selectedCharacter = nil
	s.showCharacterList = len(results) > 0
}

// ClearSearchResults resets the list display after an empty search.
func (s *State) ClearSearchResults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchResults = nil
	s.selectedCharacter = nil
	s.showCharacterList = false
}

// SelectResult moves the result with the given id into the selected
// slot. The list stays stored but is no longer the rendered view.
func (s *State) SelectResult(malID int) (*models.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.searchResults {
		if s.searchResults[i].MalID == malID {
			char := s.searchResults[i]
			s.selectedCharacter = &char
			s.showCharacterList = false
			return &char, true
		}
	}
	return nil, false
}

func (s *State) LastSearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSearchQuery
}

// SetRecommendations stores the current list and its content kind.
func (s *State) SetRecommendations(recs []models.Recommendation, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations = recs
	s.contentType = contentType
}

func (s *State) Recommendations() ([]models.Recommendation, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Recommendation, len(s.recommendations))
	copy(out, s.recommendations)
	return out, s.contentType
}

// Snapshot is the session view handed to presentation.
type Snapshot struct {
	LastSearchQuery   string             `json:"last_search_query"`
	ShowCharacterList bool               `json:"show_character_list"`
	SearchResults     []models.Character `json:"search_results,omitempty"`
	SelectedCharacter *models.Character  `json:"selected_character,omitempty"`
	ContentType       string             `json:"content_type"`
	Recommendations   int                `json:"recommendations"`
	Favorites         int                `json:"favorites"`
	History           int                `json:"history"`
}

// View renders the mutually exclusive display states: when a character
// is selected the result list is withheld.
func (s *State) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		LastSearchQuery:   s.lastSearchQuery,
		ShowCharacterList: s.showCharacterList,
		SelectedCharacter: s.selectedCharacter,
		ContentType:       s.contentType,
		Recommendations:   len(s.recommendations),
		Favorites:         len(s.favorites),
		History:           len(s.history),
	}
	if s.selectedCharacter == nil && s.showCharacterList {
		snap.SearchResults = s.searchResults
	}
	return snap
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
