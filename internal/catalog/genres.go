package catalog

import (
	"context"
	"sort"
	"sync"
)

// Genres the discovery page never offers, regardless of what the
// provider returns.
var excludedGenres = map[string]bool{
	"Hentai": true,
	"Ecchi":  true,
}

// GenreFetcher is what the cache needs from the catalog client.
type GenreFetcher interface {
	ListGenres(ctx context.Context, kind string) (map[int]string, error)
}

// GenreCache memoizes the id -> name genre vocabulary per content
// kind. A slot is written once per process lifetime and then treated
// as authoritative; there is no TTL. Failed fetches are not stored, so
// a later call can still populate the slot.
type GenreCache struct {
	fetcher GenreFetcher

	mu    sync.RWMutex
	slots map[string]map[int]string
}

func NewGenreCache(fetcher GenreFetcher) *GenreCache {
	return &GenreCache{
		fetcher: fetcher,
		slots:   make(map[string]map[int]string),
	}
}

// Get returns the vocabulary for kind, fetching it on first use. On
// fetch failure it returns an empty map and the error; nothing is
// cached in that case.
func (gc *GenreCache) Get(ctx context.Context, kind string) (map[int]string, error) {
	gc.mu.RLock()
	cached, ok := gc.slots[kind]
	gc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	genres, err := gc.fetcher.ListGenres(ctx, kind)
	if err != nil {
		return map[int]string{}, err
	}
	if len(genres) == 0 {
		return map[int]string{}, nil
	}

	// Two sessions racing on first use both fetch the same content,
	// so last writer wins is fine.
	gc.mu.Lock()
	gc.slots[kind] = genres
	gc.mu.Unlock()
	return genres, nil
}

// GenreOption is one selectable genre on the discovery page.
type GenreOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Selectable filters the excluded genres out of a vocabulary and
// returns the rest sorted by name.
func Selectable(genres map[int]string) []GenreOption {
	out := make([]GenreOption, 0, len(genres))
	for id, name := range genres {
		if excludedGenres[name] {
			continue
		}
		out = append(out, GenreOption{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
