package handlers

import (
	"net/http"

	"kindling/internal/middleware"
	"kindling/internal/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorite *services.FavoriteService
}

func NewFavoriteHandler(favorite *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorite: favorite}
}

// ToggleFavorite flips the item in and out of the caller's favorites.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	state, err := h.favorite.ToggleFavorite(user.Username, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// ToggleHidden flips the item in and out of the caller's hidden set.
func (h *FavoriteHandler) ToggleHidden(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	state, err := h.favorite.ToggleHidden(user.Username, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}
