package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"cartscout-backend/internal/cart"
	"cartscout-backend/internal/middleware"
	"cartscout-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// cartUpdateMessage is the single user-visible error for any failed mutation.
const cartUpdateMessage = "Could not update the list"

// CartViews caches the canonical cart read view. Implemented by
// cache.RedisCache.
type CartViews interface {
	GetCartView(ctx context.Context, ownerKey string) (*models.NormalizedCart, error)
	SetCartView(ctx context.Context, ownerKey string, c models.NormalizedCart) error
}

// CartHandler handles cart reads and mutations
type CartHandler struct {
	engine *cart.Engine
	views  CartViews
}

// NewCartHandler creates a new cart handler
func NewCartHandler(engine *cart.Engine, views CartViews) *CartHandler {
	return &CartHandler{engine: engine, views: views}
}

// GetCart returns the caller's canonical cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	if cached, err := h.views.GetCartView(c.Request.Context(), ownerKey); err == nil && cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	current, err := h.engine.Current(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart", "details": err.Error()})
		return
	}

	if err := h.views.SetCartView(c.Request.Context(), ownerKey, current); err != nil {
		log.Printf("Cart handler: failed to cache cart view for %s: %v", ownerKey, err)
	}
	c.JSON(http.StatusOK, current)
}

// AddProduct appends a product line item to the cart
func (h *CartHandler) AddProduct(c *gin.Context) {
	var req models.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	updated, err := h.engine.AddProduct(c.Request.Context(), ownerKey, req.ProductID, req.Quantity)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddCategory appends a category line item to the cart
func (h *CartHandler) AddCategory(c *gin.Context) {
	var req models.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	updated, err := h.engine.AddCategory(c.Request.Context(), ownerKey, req.CategoryID, req.Quantity)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateProductQuantity sets a product line item's quantity; below one it
// removes the line item
func (h *CartHandler) UpdateProductQuantity(c *gin.Context) {
	h.updateQuantity(c, models.ItemTypeProduct)
}

// UpdateCategoryQuantity sets a category line item's quantity
func (h *CartHandler) UpdateCategoryQuantity(c *gin.Context) {
	h.updateQuantity(c, models.ItemTypeCategory)
}

func (h *CartHandler) updateQuantity(c *gin.Context, itemType string) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}
	id := c.Param("id")

	var updated models.NormalizedCart
	var err error
	if itemType == models.ItemTypeProduct {
		updated, err = h.engine.UpdateProductQuantity(c.Request.Context(), ownerKey, id, req.Quantity)
	} else {
		updated, err = h.engine.UpdateCategoryQuantity(c.Request.Context(), ownerKey, id, req.Quantity)
	}
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveItem removes a line item by type and id; a missing item is a no-op
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemType := c.Param("type")
	if itemType != models.ItemTypeProduct && itemType != models.ItemTypeCategory {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item type"})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	updated, err := h.engine.RemoveItem(c.Request.Context(), ownerKey, itemType, c.Param("id"))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ChooseProduct resolves a category placeholder into a concrete product
func (h *CartHandler) ChooseProduct(c *gin.Context) {
	var req models.ChooseProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	updated, err := h.engine.ChooseProductFromCategory(c.Request.Context(), ownerKey, req.ProductID, req.CategoryID)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SwitchProduct replaces one product line item with another
func (h *CartHandler) SwitchProduct(c *gin.Context) {
	var req models.SwitchProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	updated, err := h.engine.SwitchProduct(c.Request.Context(), ownerKey, req.OriginalProductID, req.NewProductID)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) respondMutationError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrCartUpdate) {
		c.JSON(http.StatusBadGateway, gin.H{"error": cartUpdateMessage})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
