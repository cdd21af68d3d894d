package handlers

import (
	"net/http"

	"kindling/internal/middleware"
	"kindling/internal/services"
	"kindling/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	ItemID          string  `json:"item_id" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
	Text            string  `json:"text" binding:"required"`
}

// Create posts a comment on an item, optionally as a reply.
func (h *CommentHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.comments.Create(services.CreateCommentParams{
		Username:        user.Username,
		ItemID:          req.ItemID,
		ParentCommentID: req.ParentCommentID,
		Text:            req.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Get returns one comment with rendered text and its direct children.
func (h *CommentHandler) Get(c *gin.Context) {
	_, showDead := viewerContext(c)

	comment, children, err := h.comments.Get(c.Param("id"), showDead)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment":   comment,
		"text_html": utils.RenderMarkdown(comment.Text),
		"children":  children,
	})
}

// Delete removes a comment and its whole subtree.
func (h *CommentHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	removed, err := h.comments.Delete(c.Param("id"), user.Username, user.IsModerator)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
