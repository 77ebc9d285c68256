package handlers

import (
	"context"
	"log"
	"net/http"

	"cartscout-backend/internal/comparison"
	"cartscout-backend/internal/middleware"
	"cartscout-backend/internal/models"
	"cartscout-backend/internal/pricing"

	"github.com/gin-gonic/gin"
)

// ComparisonSource fetches the per-shop comparison list. Implemented by the
// upstream client.
type ComparisonSource interface {
	GetComparison(ctx context.Context, ownerKey string) ([]models.ShopComparison, error)
}

// ComparisonViews caches comparison reads and persists per-session navigator
// state. Implemented by cache.RedisCache.
type ComparisonViews interface {
	GetComparisonView(ctx context.Context, ownerKey string) ([]models.ShopComparison, error)
	SetComparisonView(ctx context.Context, ownerKey string, shops []models.ShopComparison) error
	GetNavigator(ctx context.Context, ownerKey string) (models.NavigatorState, error)
	SaveNavigator(ctx context.Context, ownerKey string, state models.NavigatorState) error
}

// ComparisonHandler serves the per-shop comparison view and the session's
// navigation state over it
type ComparisonHandler struct {
	store ComparisonSource
	views ComparisonViews
	clock pricing.Clock
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(store ComparisonSource, views ComparisonViews, clock pricing.Clock) *ComparisonHandler {
	return &ComparisonHandler{store: store, views: views, clock: clock}
}

// GetComparison returns the full comparison view for the caller's cart:
// every shop, the selected shop's ranking, and the open detail toggles
func (h *ComparisonHandler) GetComparison(c *gin.Context) {
	h.respondWithView(c, func(*comparison.Navigator, int) {})
}

// NextShop advances the selected shop, wrapping at the end of the list
func (h *ComparisonHandler) NextShop(c *gin.Context) {
	h.respondWithView(c, func(n *comparison.Navigator, count int) {
		n.Next(count)
	})
}

// PrevShop moves the selection back, wrapping at the start of the list
func (h *ComparisonHandler) PrevShop(c *gin.Context) {
	h.respondWithView(c, func(n *comparison.Navigator, count int) {
		n.Prev(count)
	})
}

// SelectShop jumps the selection to a shop index
func (h *ComparisonHandler) SelectShop(c *gin.Context) {
	var req models.SelectShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithView(c, func(n *comparison.Navigator, count int) {
		n.GoTo(req.Index, count)
	})
}

// FlipItem toggles the detail state of one comparison line item
func (h *ComparisonHandler) FlipItem(c *gin.Context) {
	var req models.FlipItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithView(c, func(n *comparison.Navigator, count int) {
		n.ToggleFlip(req.ItemKey)
	})
}

func (h *ComparisonHandler) respondWithView(c *gin.Context, transition func(*comparison.Navigator, int)) {
	ownerKey := middleware.OwnerKey(c)
	if ownerKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return
	}
	ctx := c.Request.Context()

	shops := h.loadShops(ctx, ownerKey)

	state, err := h.views.GetNavigator(ctx, ownerKey)
	if err != nil {
		log.Printf("Comparison handler: failed to load navigator for %s: %v", ownerKey, err)
		state = models.NavigatorState{}
	}
	nav := comparison.FromState(state)
	nav.Clamp(len(shops))
	transition(nav, len(shops))

	if err := h.views.SaveNavigator(ctx, ownerKey, nav.State()); err != nil {
		log.Printf("Comparison handler: failed to save navigator for %s: %v", ownerKey, err)
	}

	view := models.ComparisonView{
		Shops:        shops,
		CurrentIndex: nav.Index(),
		MoreThanOne:  nav.MoreThanOne(len(shops)),
		Ranking:      comparison.Rank(shops, nav.Index()),
		FlippedItems: nav.State().FlippedItems,
	}
	c.JSON(http.StatusOK, view)
}

// loadShops returns the comparison list, degrading to an empty list when the
// upstream fetch fails: navigation stays inert instead of erroring.
func (h *ComparisonHandler) loadShops(ctx context.Context, ownerKey string) []models.ShopComparison {
	if cached, err := h.views.GetComparisonView(ctx, ownerKey); err == nil && cached != nil {
		return cached
	}

	shops, err := h.store.GetComparison(ctx, ownerKey)
	if err != nil {
		log.Printf("Comparison handler: fetch failed for %s: %v", ownerKey, err)
		return []models.ShopComparison{}
	}

	h.resolvePricing(shops)

	if err := h.views.SetComparisonView(ctx, ownerKey, shops); err != nil {
		log.Printf("Comparison handler: failed to cache comparison for %s: %v", ownerKey, err)
	}
	return shops
}

// resolvePricing recomputes each resolved line item's charged total from its
// list price and discount validity at the current evaluation time, then
// rebuilds the shop total from those line totals. A discount can expire
// between the server pricing the cart and this service serving it; the shop
// total must stay the sum of the line totals or the ranking and the lines
// disagree. Shops without a total are unfulfillable and stay that way.
func (h *ComparisonHandler) resolvePricing(shops []models.ShopComparison) {
	for i := range shops {
		shop := &shops[i]
		sum := 0.0
		for j := range shop.SpecificProducts {
			item := &shop.SpecificProducts[j]
			item.LineTotal = pricing.LineTotal(item.UnitPrice, item.Discount, item.Quantity, h.clock)
			sum += item.LineTotal
		}
		if shop.TotalPrice != nil {
			total := sum
			shop.TotalPrice = &total
		}
	}
}
