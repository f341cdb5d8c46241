package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/repository"
)

type linkUsecaser interface {
	Create(ctx context.Context, userID, title, url string) (*domain.Link, error)
	ListMine(ctx context.Context, userID string) ([]domain.Link, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Link, error)
	Update(ctx context.Context, userID, linkID string, upd repository.LinkUpdate) error
	Delete(ctx context.Context, userID, linkID string) error
	SetVisibility(ctx context.Context, userID, linkID string, visible bool) error
	Reorder(ctx context.Context, items []domain.LinkPosition) error
}

type LinkHandler struct {
	linkUsecase linkUsecaser
	logger      *slog.Logger
}

func NewLinkHandler(linkUsecase linkUsecaser, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		linkUsecase: linkUsecase,
		logger:      logger.With("component", "link_handler"),
	}
}

type linkResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Visible   bool      `json:"visible"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLinkResponse(l *domain.Link) linkResponse {
	return linkResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Title:     l.Title,
		URL:       l.URL,
		Visible:   l.Visible,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toLinkResponses(links []domain.Link) []linkResponse {
	out := make([]linkResponse, len(links))
	for i := range links {
		out[i] = toLinkResponse(&links[i])
	}
	return out
}

type createLinkRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url"   binding:"required"`
}

// POST /link/create
func (h *LinkHandler) Create(c *gin.Context) {
	var req createLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all required fields"})
		return
	}

	link, err := h.linkUsecase.Create(c.Request.Context(), c.GetString("userID"), req.Title, req.URL)
	if err != nil {
		h.logger.Error("create link", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Link created successfully.", "link": toLinkResponse(link)})
}

// GET /link/all
// Returns the caller's links sorted ascending by position.
func (h *LinkHandler) ListMine(c *gin.Context) {
	links, err := h.linkUsecase.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list links", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": toLinkResponses(links)})
}

// GET /link/user/:username
// Public endpoint. Returns all of the user's links, hidden ones included.
func (h *LinkHandler) ListByUsername(c *gin.Context) {
	links, err := h.linkUsecase.ListByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.Error("list links by username", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": toLinkResponses(links)})
}

type updateLinkRequest struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

// PATCH /link/update/:id
func (h *LinkHandler) Update(c *gin.Context) {
	var req updateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := h.linkUsecase.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), repository.LinkUpdate{
		Title: req.Title,
		URL:   req.URL,
	})
	if err != nil {
		h.respondLinkError(c, "update link", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link updated successfully."})
}

// DELETE /link/delete/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	err := h.linkUsecase.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.respondLinkError(c, "delete link", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully."})
}

type visibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// PATCH /link/visible/:id
func (h *LinkHandler) SetVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := h.linkUsecase.SetVisibility(c.Request.Context(), c.GetString("userID"), c.Param("id"), *req.Visible)
	if err != nil {
		h.respondLinkError(c, "set visibility", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visibility updated successfully."})
}

type reorderItem struct {
	ID       string `json:"id"       binding:"required"`
	Position int    `json:"position"`
}

type reorderRequest struct {
	Links []reorderItem `json:"links" binding:"required"`
}

// PUT /link/positions
// Bulk position update. Registered without the session middleware and with no
// ownership check on the items.
func (h *LinkHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload format."})
		return
	}

	items := make([]domain.LinkPosition, len(req.Links))
	for i, l := range req.Links {
		items[i] = domain.LinkPosition{ID: l.ID, Position: l.Position}
	}

	if err := h.linkUsecase.Reorder(c.Request.Context(), items); err != nil {
		h.logger.Error("reorder links", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update positions."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Positions updated successfully."})
}

func (h *LinkHandler) respondLinkError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errLinkNotFound})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"message": errNotOwner})
	default:
		h.logger.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}
