// Package recommend implements the AI personal recommendation page:
// questionnaire in, five enriched suggestions out.
package recommend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itooklib/internal/session"
	"itooklib/pkg/models"
)

// Recommender is the advisor operation this page uses.
type Recommender interface {
	Recommend(ctx context.Context, profile models.RecommendationProfile) []models.Recommendation
}

// MediaFinder resolves a recommendation keyword to a catalog entry.
type MediaFinder interface {
	TopByKeyword(ctx context.Context, kind, keyword string) (*models.MediaItem, error)
}

// BookFinder resolves a recommendation keyword to a book.
type BookFinder interface {
	SearchByKeyword(ctx context.Context, keyword string, maxResults int, language string) ([]models.Book, error)
}

type Handler struct {
	Advisor Recommender
	Catalog MediaFinder
	Books   BookFinder
}

func NewHandler(adv Recommender, catalog MediaFinder, books BookFinder) *Handler {
	return &Handler{Advisor: adv, Catalog: catalog, Books: books}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.recommend)
	rg.GET("", h.current)
}

// Enriched is one recommendation merged with whatever metadata the
// keyword lookup found. Media and Book stay nil on a miss; the
// suggestion itself still renders.
type Enriched struct {
	models.Recommendation
	Media *models.MediaItem `json:"media,omitempty"`
	Book  *models.Book      `json:"book,omitempty"`
}

func (h *Handler) recommend(c *gin.Context) {
	state := session.MustGetState(c)

	var profile models.RecommendationProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if strings.TrimSpace(profile.Interests) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please tell me about your interests!"})
		return
	}
	switch profile.ContentType {
	case "anime", "manga", "books":
	case "":
		profile.ContentType = "anime"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type must be anime, manga or books"})
		return
	}

	recs := h.Advisor.Recommend(c.Request.Context(), profile)
	if recs == nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Sorry, couldn't generate recommendations. Try again!",
		})
		return
	}

	state.SetRecommendations(recs, profile.ContentType)
	state.AddHistory(
		models.HistoryAIRecommend,
		fmt.Sprintf("%s for %dyo", profile.ContentType, profile.Age),
		fmt.Sprintf("%d items", len(recs)),
	)

	c.JSON(http.StatusOK, gin.H{
		"content_type":    profile.ContentType,
		"recommendations": h.enrich(c.Request.Context(), recs, profile.ContentType),
	})
}

// current re-renders the recommendations stored in the session.
func (h *Handler) current(c *gin.Context) {
	state := session.MustGetState(c)

	recs, contentType := state.Recommendations()
	if len(recs) == 0 {
		c.JSON(http.StatusOK, gin.H{"recommendations": []Enriched{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content_type":    contentType,
		"recommendations": h.enrich(c.Request.Context(), recs, contentType),
	})
}

// enrich looks every suggestion up by its search keyword, one at a
// time. A failed or empty lookup leaves the suggestion bare.
func (h *Handler) enrich(ctx context.Context, recs []models.Recommendation, contentType string) []Enriched {
	out := make([]Enriched, 0, len(recs))
	for _, rec := range recs {
		e := Enriched{Recommendation: rec}

		switch contentType {
		case "anime", "manga":
			item, err := h.Catalog.TopByKeyword(ctx, contentType, rec.SearchKeyword)
			if err != nil {
				log.Printf("recommend: enrich %q: %v", rec.SearchKeyword, err)
			} else if item != nil {
				item.Synopsis = truncate(item.Synopsis, 300)
				e.Media = item
			}
		case "books":
			found, err := h.Books.SearchByKeyword(ctx, rec.SearchKeyword, 1, "en")
			if err != nil {
				log.Printf("recommend: enrich %q: %v", rec.SearchKeyword, err)
			} else if len(found) > 0 {
				book := found[0]
				book.Description = truncate(book.Description, 300)
				e.Book = &book
			}
		}
		out = append(out, e)
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
