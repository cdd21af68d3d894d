package handlers

import (
	"net/http"
	"strconv"

	"kindling/internal/middleware"
	"kindling/internal/services"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

type moderationRequest struct {
	Reason string `json:"reason"`
}

func (h *ModerationHandler) act(c *gin.Context, apply func(moderator, target, reason string) error) {
	user, _ := middleware.CurrentUser(c)

	// The body is optional: an action without a reason is a bare POST.
	var req moderationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	if err := apply(user.Username, c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ModerationHandler) KillItem(c *gin.Context)      { h.act(c, h.moderation.KillItem) }
func (h *ModerationHandler) UnkillItem(c *gin.Context)    { h.act(c, h.moderation.UnkillItem) }
func (h *ModerationHandler) KillComment(c *gin.Context)   { h.act(c, h.moderation.KillComment) }
func (h *ModerationHandler) UnkillComment(c *gin.Context) { h.act(c, h.moderation.UnkillComment) }
func (h *ModerationHandler) BanUser(c *gin.Context)       { h.act(c, h.moderation.BanUser) }
func (h *ModerationHandler) UnbanUser(c *gin.Context)     { h.act(c, h.moderation.UnbanUser) }

// Log returns the most recent moderation actions.
func (h *ModerationHandler) Log(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.moderation.Log(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
