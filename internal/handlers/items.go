package handlers

import (
	"net/http"
	"strconv"

	"kindling/internal/middleware"
	"kindling/internal/models"
	"kindling/internal/services"
	"kindling/internal/utils"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	items    *services.ItemService
	comments *services.CommentService
	favorite *services.FavoriteService
	votes    *services.VoteService
}

func NewItemHandler(items *services.ItemService, comments *services.CommentService,
	favorite *services.FavoriteService, votes *services.VoteService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments, favorite: favorite, votes: votes}
}

// viewerContext resolves who is looking and whether they see dead content.
func viewerContext(c *gin.Context) (username string, showDead bool) {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.Username, user.ShowDead
	}
	return "", false
}

// List serves a score-ordered page of the front page.
func (h *ItemHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	viewer, showDead := viewerContext(c)

	items, err := h.items.List(page, viewer, showDead)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "items": items})
}

type createItemRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	URL   string `json:"url" binding:"omitempty,url"`
	Text  string `json:"text"`
}

// Create submits a new item.
func (h *ItemHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.items.Create(services.CreateItemParams{
		Username: user.Username,
		Title:    req.Title,
		URL:      req.URL,
		Text:     req.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Get returns one item with its rendered text, the viewer's relationship to
// it and the full comment list.
func (h *ItemHandler) Get(c *gin.Context) {
	viewer, showDead := viewerContext(c)

	item, err := h.items.Get(c.Param("id"), showDead)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.comments.ListForItem(item.ID, showDead)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"item":     item,
		"comments": comments,
	}
	if item.Text != "" {
		resp["text_html"] = utils.RenderMarkdown(item.Text)
	}
	if viewer != "" {
		state, err := h.votes.State(viewer, models.ContentItem, item.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		favorited, err := h.favorite.IsFavorited(viewer, item.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["vote_state"] = state.String()
		resp["favorited"] = favorited
	}
	c.JSON(http.StatusOK, resp)
}

type editItemRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	URL   string `json:"url" binding:"omitempty,url"`
	Text  string `json:"text"`
}

// Update edits an item while it is still editable.
func (h *ItemHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req editItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.items.Edit(c.Param("id"), user.Username, req.Title, req.URL, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes an item and its comment tree.
func (h *ItemHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.items.Delete(c.Param("id"), user.Username, user.IsModerator); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
