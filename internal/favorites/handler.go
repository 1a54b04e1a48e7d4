// Package favorites exposes the session's favorites list and search
// history.
package favorites

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"itooklib/internal/session"
	"itooklib/pkg/models"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.POST("/favorites", h.add)
	rg.DELETE("/favorites/:id", h.remove)
	rg.GET("/history", h.history)
	rg.DELETE("/history", h.clearHistory)
}

func (h *Handler) list(c *gin.Context) {
	state := session.MustGetState(c)
	favs := state.Favorites()
	c.JSON(http.StatusOK, gin.H{
		"total": len(favs),
		"items": favs,
	})
}

type addReq struct {
	Type      string `json:"type"` // only "characters" is accepted
	Character struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Image     string `json:"image"`
		Favorites int    `json:"favorites"`
	} `json:"character"`
}

func (h *Handler) add(c *gin.Context) {
	state := session.MustGetState(c)

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Character.ID == 0 || req.Character.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "character id and name required"})
		return
	}
	if req.Type != "characters" {
		// other item kinds are refused without an error
		c.JSON(http.StatusOK, gin.H{"added": false})
		return
	}

	added := state.AddFavorite(req.Type, models.FavoriteCharacter{
		ID:        req.Character.ID,
		Name:      req.Character.Name,
		Image:     req.Character.Image,
		Favorites: req.Character.Favorites,
	})
	if !added {
		c.JSON(http.StatusOK, gin.H{
			"added":   false,
			"message": "Already in favorites!",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"added":   true,
		"message": "Added to favorites!",
	})
}

func (h *Handler) remove(c *gin.Context) {
	state := session.MustGetState(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	state.RemoveFavorite(id)
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

func (h *Handler) history(c *gin.Context) {
	state := session.MustGetState(c)
	entries := state.History()
	c.JSON(http.StatusOK, gin.H{
		"total":   len(entries),
		"entries": entries,
	})
}

func (h *Handler) clearHistory(c *gin.Context) {
	state := session.MustGetState(c)
	state.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
