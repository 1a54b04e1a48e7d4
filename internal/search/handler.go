// Package search implements the character lookup pages: search by
// name, pick one result for an AI profile, and search by uploaded
// image.
package search

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itooklib/internal/advisor"
	"itooklib/internal/session"
	"itooklib/pkg/models"
)

// CharacterSource is the slice of the catalog client these pages use.
type CharacterSource interface {
	SearchCharacters(ctx context.Context, query string) ([]models.Character, error)
	SearchCharacter(ctx context.Context, query string) (*models.Character, error)
}

// ProfileAdvisor is the slice of the AI advisor these pages use.
type ProfileAdvisor interface {
	IdentifyCharacter(ctx context.Context, imageData []byte, mimeType string) string
	AnalyzeProfile(ctx context.Context, char *models.Character) string
}

type Handler struct {
	Catalog CharacterSource
	Advisor ProfileAdvisor
}

func NewHandler(catalog CharacterSource, adv ProfileAdvisor) *Handler {
	return &Handler{Catalog: catalog, Advisor: adv}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/characters", h.searchByName)
	rg.POST("/characters/select", h.selectCharacter)
	rg.POST("/image", h.searchByImage)
}

type searchReq struct {
	Query string `json:"query"`
}

func (h *Handler) searchByName(c *gin.Context) {
	state := session.MustGetState(c)

	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query required"})
		return
	}

	results, err := h.Catalog.SearchCharacters(c.Request.Context(), query)
	if err != nil {
		// provider down renders the same as zero matches
		log.Printf("search: characters %q: %v", query, err)
		results = nil
	}

	if len(results) == 0 {
		state.ClearSearchResults()
		c.JSON(http.StatusOK, gin.H{
			"found":   false,
			"message": "No character found!",
		})
		return
	}

	state.SetSearchResults(query, results)
	c.JSON(http.StatusOK, gin.H{
		"found":   true,
		"total":   len(results),
		"results": results,
	})
}

type selectReq struct {
	MalID int `json:"mal_id"`
}

func (h *Handler) selectCharacter(c *gin.Context) {
	state := session.MustGetState(c)

	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	char, ok := state.SelectResult(req.MalID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not in current results"})
		return
	}

	analysis := h.Advisor.AnalyzeProfile(c.Request.Context(), char)
	state.AddHistory(models.HistoryCharacterText, state.LastSearchQuery(), char.Name)

	c.JSON(http.StatusOK, gin.H{
		"character": char,
		"analysis":  analysis,
	})
}

func (h *Handler) searchByImage(c *gin.Context) {
	state := session.MustGetState(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	detected := h.Advisor.IdentifyCharacter(c.Request.Context(), data, mimeType)
	if detected == advisor.NotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": detected})
		return
	}
	if detected == "" || detected == advisor.Unknown {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "AI couldn't identify this character. Try a different image!",
		})
		return
	}

	char, err := h.Catalog.SearchCharacter(c.Request.Context(), detected)
	if err != nil {
		log.Printf("search: image lookup %q: %v", detected, err)
		char = nil
	}
	if char == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"detected": detected,
			"error":    "Cannot find detailed data for '" + detected + "'",
		})
		return
	}

	analysis := h.Advisor.AnalyzeProfile(c.Request.Context(), char)
	state.AddHistory(models.HistoryCharacterImage, "Image Upload", detected)

	c.JSON(http.StatusOK, gin.H{
		"detected":  detected,
		"character": char,
		"analysis":  analysis,
	})
}
