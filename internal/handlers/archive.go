package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cartscout-backend/internal/cart"
	"cartscout-backend/internal/database"
	"cartscout-backend/internal/middleware"
	"cartscout-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ArchiveHandler handles snapshotting, listing and restoring past carts
type ArchiveHandler struct {
	queries *database.ArchiveQueries
	engine  *cart.Engine
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(queries *database.ArchiveQueries, engine *cart.Engine) *ArchiveHandler {
	return &ArchiveHandler{queries: queries, engine: engine}
}

// CreateArchive snapshots the caller's current cart under a name
func (h *ArchiveHandler) CreateArchive(c *gin.Context) {
	var req models.ArchiveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	current, err := h.engine.Current(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart", "details": err.Error()})
		return
	}
	if len(current.ProductItems) == 0 && len(current.CategoryItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot archive an empty cart"})
		return
	}

	archive, err := h.queries.CreateArchive(ownerKey, req.Name, current)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive cart", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, archive)
}

// ListArchives returns the caller's archived carts, newest first
func (h *ArchiveHandler) ListArchives(c *gin.Context) {
	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	archives, err := h.queries.ListArchives(ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list archives", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.ArchivedCartListResponse{Archives: archives, Total: len(archives)})
}

// RestoreArchive replaces the caller's active cart with an archived snapshot
func (h *ArchiveHandler) RestoreArchive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid archive ID"})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	archive, err := h.queries.GetArchive(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archive not found"})
		return
	}

	restored, err := h.engine.Restore(c.Request.Context(), ownerKey, archive.Cart)
	if err != nil {
		if errors.Is(err, cart.ErrCartUpdate) {
			c.JSON(http.StatusBadGateway, gin.H{"error": cartUpdateMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore archive", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, restored)
}

// DeleteArchive removes one of the caller's archives
func (h *ArchiveHandler) DeleteArchive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid archive ID"})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	if err := h.queries.DeleteArchive(id, ownerKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archive not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archive deleted successfully"})
}
