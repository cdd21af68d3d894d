package handlers

import (
	"net/http"

	"kindling/internal/middleware"
	"kindling/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	identity *services.IdentityService
	favorite *services.FavoriteService
}

func NewUserHandler(identity *services.IdentityService, favorite *services.FavoriteService) *UserHandler {
	return &UserHandler{identity: identity, favorite: favorite}
}

// Profile returns a public user profile.
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.identity.Get(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Favorites lists the items a user starred.
func (h *UserHandler) Favorites(c *gin.Context) {
	if _, err := h.identity.Get(c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.favorite.ListFavorites(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type updateProfileRequest struct {
	About       *string `json:"about"`
	ShowDead    *bool   `json:"show_dead"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=8"`
}

// Update changes the caller's own profile. The path username must match the
// session.
func (h *UserHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if c.Param("username") != user.Username {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot edit another user"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.identity.Update(user.Username, services.UpdateProfileParams{
		About:       req.About,
		ShowDead:    req.ShowDead,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an account. Owners delete themselves; moderators may delete
// anyone. Deleting your own account also ends the session.
func (h *UserHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	target := c.Param("username")

	if err := h.identity.Delete(target, user.Username, user.IsModerator); err != nil {
		respondError(c, err)
		return
	}

	if target == user.Username {
		session := sessions.Default(c)
		session.Clear()
		_ = session.Save()
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
