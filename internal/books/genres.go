package books

import "sort"

// bookGenres maps display names to Google Books subject tokens.
var bookGenres = map[string]string{
	"Fiction":         "fiction",
	"Non-Fiction":     "nonfiction",
	"Mystery":         "mystery",
	"Thriller":        "thriller",
	"Romance":         "romance",
	"Science Fiction": "science+fiction",
	"Fantasy":         "fantasy",
	"Horror":          "horror",
	"Biography":       "biography",
	"History":         "history",
	"Self-Help":       "self+help",
	"Business":        "business",
	"Cooking":         "cooking",
	"Travel":          "travel",
	"Young Adult":     "young+adult",
	"Children":        "children",
	"Poetry":          "poetry",
	"Psychology":      "psychology",
	"Philosophy":      "philosophy",
	"Religion":        "religion",
}

// GenreNames lists the selectable book genre display names, sorted.
func GenreNames() []string {
	names := make([]string, 0, len(bookGenres))
	for name := range bookGenres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SubjectTokens translates display names to subject query tokens.
// Unknown names are skipped.
func SubjectTokens(names []string) []string {
	tokens := make([]string, 0, len(names))
	for _, name := range names {
		if token, ok := bookGenres[name]; ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
