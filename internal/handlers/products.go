package handlers

import (
	"errors"
	"net/http"

	"cartscout-backend/internal/middleware"
	"cartscout-backend/internal/models"
	"cartscout-backend/internal/pricing"
	"cartscout-backend/internal/upstream"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// ProductHandler handles barcode lookups and cart membership checks
type ProductHandler struct {
	store   *upstream.Client
	lookups *gocache.Cache
	clock   pricing.Clock
}

// NewProductHandler creates a new product handler
func NewProductHandler(store *upstream.Client, lookups *gocache.Cache, clock pricing.Clock) *ProductHandler {
	return &ProductHandler{store: store, lookups: lookups, clock: clock}
}

// GetByBarcode resolves a scanned barcode to a product with its effective
// price. A miss is "not found", not a failure.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("code")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barcode is required"})
		return
	}

	var lookup *models.ProductLookup
	if cached, found := h.lookups.Get(barcode); found {
		lookup = cached.(*models.ProductLookup)
	} else {
		fetched, err := h.store.LookupBarcode(c.Request.Context(), barcode)
		if err != nil {
			if errors.Is(err, upstream.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product", "details": err.Error()})
			return
		}
		lookup = fetched
		h.lookups.Set(barcode, lookup, gocache.DefaultExpiration)
	}

	effective := pricing.EffectivePrice(lookup.Product.ListPrice, lookup.Discount, h.clock)
	c.JSON(http.StatusOK, models.ProductResponse{
		Product:            lookup.Product,
		EffectivePrice:     effective,
		DiscountPercentage: pricing.DiscountPercentage(&lookup.Product.ListPrice, &effective),
	})
}

// CartContains reports whether a barcode is already in the caller's hybrid
// cart and at what quantity
func (h *ProductHandler) CartContains(c *gin.Context) {
	barcode := c.Param("barcode")
	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}

	hybrid, err := h.store.GetHybridCart(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart", "details": err.Error()})
		return
	}

	response := models.CartContainsResponse{Barcode: barcode}
	for _, entry := range hybrid.SpecificProducts {
		if entry.Product.Barcode == barcode {
			response.InCart = true
			response.Quantity = entry.Quantity
			break
		}
	}
	c.JSON(http.StatusOK, response)
}
