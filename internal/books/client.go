// Package books talks to the Google Books volumes API.
package books

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

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client searches Google Books volumes by subject or keyword.
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

type volumesEnvelope struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			ImageLinks    struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
			PreviewLink string `json:"previewLink"`
			InfoLink    string `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// SearchByGenres combines the given subject tokens into one AND query
// ("subject:a+subject:b"). The language restriction is applied only
// for English; for sparse-content languages like Vietnamese it is
// omitted to widen results.
func (c *Client) SearchByGenres(ctx context.Context, genres []string, maxResults int, language string) ([]models.Book, error) {
	if len(genres) == 0 {
		return nil, fmt.Errorf("books: at least one genre required")
	}

	terms := make([]string, 0, len(genres))
	for _, g := range genres {
		terms = append(terms, "subject:"+g)
	}

	q := url.Values{}
	q.Set("q", strings.Join(terms, "+"))
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("orderBy", "relevance")
	q.Set("printType", "books")
	if language == "en" {
		q.Set("langRestrict", "en")
	}
	return c.search(ctx, q)
}

// SearchByKeyword is the free-text variant (title, author, topic).
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, maxResults int, language string) ([]models.Book, error) {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("orderBy", "relevance")
	if language == "en" {
		q.Set("langRestrict", "en")
	}
	return c.search(ctx, q)
}

func (c *Client) search(ctx context.Context, q url.Values) ([]models.Book, error) {
	u := c.BaseURL + "/volumes?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("books: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("books: request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books: status %d: %s", resp.StatusCode, string(body))
	}

	var env volumesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("books: decode: %w", err)
	}

	out := make([]models.Book, 0, len(env.Items))
	for _, item := range env.Items {
		vi := item.VolumeInfo

		// prefer the bigger thumbnail
		thumb := vi.ImageLinks.Thumbnail
		if thumb == "" {
			thumb = vi.ImageLinks.SmallThumbnail
		}

		rating := "N/A"
		if vi.AverageRating > 0 {
			rating = strconv.FormatFloat(vi.AverageRating, 'g', -1, 64)
		}

		out = append(out, models.Book{
			ID:            item.ID,
			Title:         defaultStr(vi.Title, "N/A"),
			Authors:       defaultList(vi.Authors, "Unknown"),
			Publisher:     defaultStr(vi.Publisher, "N/A"),
			PublishedDate: defaultStr(vi.PublishedDate, "N/A"),
			Description:   defaultStr(vi.Description, "No description available"),
			PageCount:     vi.PageCount,
			Categories:    defaultList(vi.Categories, "N/A"),
			AverageRating: rating,
			Thumbnail:     thumb,
			PreviewLink:   defaultStr(vi.PreviewLink, "#"),
			InfoLink:      defaultStr(vi.InfoLink, "#"),
		})
	}
	return out, nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func defaultList(list []string, def string) []string {
	if len(list) == 0 {
		return []string{def}
	}
	return list
}
