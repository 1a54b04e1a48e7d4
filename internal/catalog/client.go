// Package catalog talks to the Jikan v4 API (MyAnimeList metadata).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"itooklib/pkg/models"
)

const defaultBaseURL = "https://api.jikan.moe/v4"

// Content kinds known to Jikan.
const (
	KindAnime = "anime"
	KindManga = "manga"
)

// Client fetches characters, anime/manga entries and genre
// vocabularies from Jikan.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type characterEnvelope struct {
	Data []struct {
		MalID     int    `json:"mal_id"`
		Name      string `json:"name"`
		NameKanji string `json:"name_kanji"`
		Favorites int    `json:"favorites"`
		About     string `json:"about"`
		Images    struct {
			JPG struct {
				ImageURL string `json:"image_url"`
			} `json:"jpg"`
		} `json:"images"`
	} `json:"data"`
}

type mediaEnvelope struct {
	Data []struct {
		Title         string  `json:"title"`
		TitleJapanese string  `json:"title_japanese"`
		Score         float64 `json:"score"`
		Episodes      int     `json:"episodes"`
		Chapters      int     `json:"chapters"`
		Synopsis      string  `json:"synopsis"`
		URL           string  `json:"url"`
		Genres        []struct {
			MalID int    `json:"mal_id"`
			Name  string `json:"name"`
		} `json:"genres"`
		Images struct {
			JPG struct {
				ImageURL string `json:"image_url"`
			} `json:"jpg"`
		} `json:"images"`
		Aired struct {
			From string `json:"from"`
		} `json:"aired"`
		Published struct {
			From string `json:"from"`
		} `json:"published"`
	} `json:"data"`
}

// SearchCharacters looks up characters by name, up to 10 matches in
// provider order.
func (c *Client) SearchCharacters(ctx context.Context, query string) ([]models.Character, error) {
	return c.searchCharacters(ctx, query, 10)
}

// SearchCharacter returns only the top match, or nil when there is none.
func (c *Client) SearchCharacter(ctx context.Context, query string) (*models.Character, error) {
	chars, err := c.searchCharacters(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return nil, nil
	}
	return &chars[0], nil
}

func (c *Client) searchCharacters(ctx context.Context, query string, limit int) ([]models.Character, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var env characterEnvelope
	if err := c.getJSON(ctx, "/characters", q, &env); err != nil {
		return nil, err
	}

	out := make([]models.Character, 0, len(env.Data))
	for _, item := range env.Data {
		out = append(out, models.Character{
			MalID:     item.MalID,
			Name:      item.Name,
			NameKanji: item.NameKanji,
			ImageURL:  item.Images.JPG.ImageURL,
			Favorites: item.Favorites,
			About:     item.About,
		})
	}
	return out, nil
}

// SearchMedia queries anime or manga filtered by genre ids. orderBy is
// "start_date" or "score", sort is "asc" or "desc".
func (c *Client) SearchMedia(ctx context.Context, kind string, genreIDs []int, orderBy, sort string, limit int) ([]models.MediaItem, error) {
	if kind != KindAnime && kind != KindManga {
		return nil, fmt.Errorf("jikan: unknown content kind %q", kind)
	}
	if len(genreIDs) == 0 {
		return nil, fmt.Errorf("jikan: at least one genre id required")
	}

	ids := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		ids = append(ids, strconv.Itoa(id))
	}

	q := url.Values{}
	q.Set("genres", strings.Join(ids, ","))
	q.Set("order_by", orderBy)
	q.Set("sort", sort)
	q.Set("limit", strconv.Itoa(limit))

	var env mediaEnvelope
	if err := c.getJSON(ctx, "/"+kind, q, &env); err != nil {
		return nil, err
	}
	return c.mediaItems(kind, env), nil
}

// TopByKeyword returns the single best anime/manga match for a free
// keyword, or nil. Used to enrich AI recommendations.
func (c *Client) TopByKeyword(ctx context.Context, kind, keyword string) (*models.MediaItem, error) {
	if kind != KindAnime && kind != KindManga {
		return nil, fmt.Errorf("jikan: unknown content kind %q", kind)
	}

	q := url.Values{}
	q.Set("q", keyword)
	q.Set("limit", "1")

	var env mediaEnvelope
	if err := c.getJSON(ctx, "/"+kind, q, &env); err != nil {
		return nil, err
	}
	items := c.mediaItems(kind, env)
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// ListGenres fetches the full genre vocabulary for a content kind.
func (c *Client) ListGenres(ctx context.Context, kind string) (map[int]string, error) {
	if kind != KindAnime && kind != KindManga {
		return nil, fmt.Errorf("jikan: unknown content kind %q", kind)
	}

	var env struct {
		Data []struct {
			MalID int    `json:"mal_id"`
			Name  string `json:"name"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/genres/"+kind, nil, &env); err != nil {
		return nil, err
	}

	genres := make(map[int]string, len(env.Data))
	for _, g := range env.Data {
		genres[g.MalID] = g.Name
	}
	return genres, nil
}

func (c *Client) mediaItems(kind string, env mediaEnvelope) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(env.Data))
	for _, item := range env.Data {
		names := make([]string, 0, len(item.Genres))
		for _, g := range item.Genres {
			names = append(names, g.Name)
		}

		from := item.Aired.From
		if kind == KindManga {
			from = item.Published.From
		}

		out = append(out, models.MediaItem{
			Title:         item.Title,
			TitleJapanese: item.TitleJapanese,
			Score:         item.Score,
			Episodes:      item.Episodes,
			Chapters:      item.Chapters,
			Genres:        names,
			Synopsis:      item.Synopsis,
			URL:           item.URL,
			ImageURL:      item.Images.JPG.ImageURL,
			Year:          yearOf(from),
		})
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("jikan: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("jikan: request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jikan: status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("jikan: decode: %w", err)
	}
	return nil
}

// yearOf pulls the year out of an ISO date like "1999-10-20T00:00:00+00:00".
func yearOf(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return ""
	}
	if i := strings.IndexByte(from, '-'); i > 0 {
		return from[:i]
	}
	return from
}
