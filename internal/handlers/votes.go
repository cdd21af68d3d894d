package handlers

import (
	"net/http"

	"kindling/internal/middleware"
	"kindling/internal/models"
	"kindling/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type voteRequest struct {
	State string `json:"state" binding:"required"`
}

func (h *VoteHandler) cast(c *gin.Context, contentType string) {
	user, _ := middleware.CurrentUser(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	state, ok := models.ParseVoteState(req.State)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be up, down or none"})
		return
	}

	outcome, err := h.votes.Cast(user.Username, contentType, c.Param("id"), state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// VoteItem casts the caller's vote on an item.
func (h *VoteHandler) VoteItem(c *gin.Context) {
	h.cast(c, models.ContentItem)
}

// VoteComment casts the caller's vote on a comment.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	h.cast(c, models.ContentComment)
}
