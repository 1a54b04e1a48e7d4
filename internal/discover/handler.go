// Package discover implements the genre-browse page for anime, manga
// and books.
package discover

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itooklib/internal/books"
	"itooklib/internal/catalog"
	"itooklib/internal/session"
	"itooklib/pkg/models"
)

// GenreSource hands out the cached genre vocabulary per content kind.
type GenreSource interface {
	Get(ctx context.Context, kind string) (map[int]string, error)
}

// MediaSource is the genre-filtered catalog search.
type MediaSource interface {
	SearchMedia(ctx context.Context, kind string, genreIDs []int, orderBy, sort string, limit int) ([]models.MediaItem, error)
}

// BookSource is the subject-filtered book search.
type BookSource interface {
	SearchByGenres(ctx context.Context, genres []string, maxResults int, language string) ([]models.Book, error)
}

type Handler struct {
	Genres  GenreSource
	Catalog MediaSource
	Books   BookSource
}

func NewHandler(genres GenreSource, catalog MediaSource, bookSrc BookSource) *Handler {
	return &Handler{Genres: genres, Catalog: catalog, Books: bookSrc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/genres", h.listGenres)
	rg.POST("/media", h.searchMedia)
	rg.POST("/books", h.searchBooks)
}

func (h *Handler) listGenres(c *gin.Context) {
	kind := c.DefaultQuery("type", catalog.KindAnime)

	if kind == "books" {
		c.JSON(http.StatusOK, gin.H{"type": kind, "genres": books.GenreNames()})
		return
	}
	if kind != catalog.KindAnime && kind != catalog.KindManga {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be anime, manga or books"})
		return
	}

	vocab, err := h.Genres.Get(c.Request.Context(), kind)
	if err != nil {
		log.Printf("discover: genres %s: %v", kind, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":   kind,
		"genres": catalog.Selectable(vocab),
	})
}

type mediaReq struct {
	Type     string `json:"type"`
	GenreIDs []int  `json:"genre_ids"`
	OrderBy  string `json:"order_by"` // Newest | Oldest | Most Popular
}

func (h *Handler) searchMedia(c *gin.Context) {
	state := session.MustGetState(c)

	var req mediaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Type != catalog.KindAnime && req.Type != catalog.KindManga {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be anime or manga"})
		return
	}
	if len(req.GenreIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose at least one genre!"})
		return
	}

	orderBy, sort, ok := sortParams(req.OrderBy)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_by must be Newest, Oldest or Most Popular"})
		return
	}

	state.AddHistory(req.Type+"_genre", h.genreNames(c.Request.Context(), req.Type, req.GenreIDs), "")

	items, err := h.Catalog.SearchMedia(c.Request.Context(), req.Type, req.GenreIDs, orderBy, sort, 10)
	if err != nil {
		log.Printf("discover: %s search: %v", req.Type, err)
		items = nil
	}
	for i := range items {
		items[i].Synopsis = truncate(items[i].Synopsis, 200)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":  req.Type,
		"total": len(items),
		"items": items,
	})
}

type booksReq struct {
	Genres   []string `json:"genres"`   // display names
	Language string   `json:"language"` // "en" (default) or "vi"
}

func (h *Handler) searchBooks(c *gin.Context) {
	state := session.MustGetState(c)

	var req booksReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Genres) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose at least one genre!"})
		return
	}

	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	tokens := books.SubjectTokens(req.Genres)
	if len(tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown book genres"})
		return
	}

	found, err := h.Books.SearchByGenres(c.Request.Context(), tokens, 10, lang)
	if err != nil {
		log.Printf("discover: books search: %v", err)
		found = nil
	}

	state.AddHistory(models.HistoryBooksGenre, strings.Join(req.Genres, ", "), "")

	for i := range found {
		found[i].Description = truncate(found[i].Description, 300)
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(found),
		"items": found,
	})
}

// sortParams maps the three display choices onto Jikan's order_by/sort
// pair.
func sortParams(orderBy string) (string, string, bool) {
	switch orderBy {
	case "Newest":
		return "start_date", "desc", true
	case "Oldest":
		return "start_date", "asc", true
	case "Most Popular", "":
		return "score", "desc", true
	default:
		return "", "", false
	}
}

// genreNames resolves ids to display names for the history record.
// The vocabulary is already cached by the time a search is issued.
func (h *Handler) genreNames(ctx context.Context, kind string, ids []int) string {
	vocab, err := h.Genres.Get(ctx, kind)
	if err != nil {
		vocab = nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := vocab[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
