package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cartscout-backend/internal/models"
)

// ErrCartUpdate is the single error kind surfaced for any mutation that
// fails to persist upstream. The HTTP layer maps it to one user-visible
// "could not update the list" notification; there is no per-field detail.
var ErrCartUpdate = errors.New("cart update failed")

// Store is the upstream remote store the engine reads carts from and writes
// full-cart replacements to. The remote store is the single source of truth;
// the engine never keeps local state between calls.
type Store interface {
	GetCart(ctx context.Context, ownerKey string) (*models.RemoteCart, error)
	ReplaceCart(ctx context.Context, ownerKey string, cart models.NormalizedCart) error
}

// CacheInvalidator drops the derived read views ("cart" and "cart
// comparison") after a successful mutation so subsequent reads observe the
// write.
type CacheInvalidator interface {
	InvalidateCartViews(ctx context.Context, ownerKey string) error
}

// Engine applies cart mutations as a strict read, transform, full-replace,
// invalidate cycle against the upstream store.
type Engine struct {
	store  Store
	caches CacheInvalidator
}

func NewEngine(store Store, caches CacheInvalidator) *Engine {
	return &Engine{store: store, caches: caches}
}

// Current reads and normalizes the owner's cart without mutating anything.
func (e *Engine) Current(ctx context.Context, ownerKey string) (models.NormalizedCart, error) {
	remote, err := e.store.GetCart(ctx, ownerKey)
	if err != nil {
		return models.NormalizedCart{}, fmt.Errorf("failed to read cart: %w", err)
	}
	return Normalize(remote), nil
}

// AddProduct appends a new product line item. A quantity below one defaults
// to one.
func (e *Engine) AddProduct(ctx context.Context, ownerKey, productID string, quantity int) (models.NormalizedCart, error) {
	if quantity < 1 {
		quantity = 1
	}
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return AddProductItem(c, productID, quantity)
	})
}

// AddCategory appends a new category line item. A quantity below one defaults
// to one.
func (e *Engine) AddCategory(ctx context.Context, ownerKey, categoryID string, quantity int) (models.NormalizedCart, error) {
	if quantity < 1 {
		quantity = 1
	}
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return AddCategoryItem(c, categoryID, quantity)
	})
}

// RemoveItem removes the line item matching id within the given type
// (models.ItemTypeProduct or models.ItemTypeCategory). A missing item is a
// no-op; an unknown type is rejected before any upstream call.
func (e *Engine) RemoveItem(ctx context.Context, ownerKey, itemType, id string) (models.NormalizedCart, error) {
	switch itemType {
	case models.ItemTypeProduct:
		return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
			return RemoveProductItem(c, id)
		})
	case models.ItemTypeCategory:
		return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
			return RemoveCategoryItem(c, id)
		})
	default:
		return models.NormalizedCart{}, fmt.Errorf("unknown item type %q", itemType)
	}
}

// UpdateProductQuantity sets a product line item's quantity; below one it
// delegates to removal.
func (e *Engine) UpdateProductQuantity(ctx context.Context, ownerKey, productID string, quantity int) (models.NormalizedCart, error) {
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return SetProductQuantity(c, productID, quantity)
	})
}

// UpdateCategoryQuantity is UpdateProductQuantity for category line items.
func (e *Engine) UpdateCategoryQuantity(ctx context.Context, ownerKey, categoryID string, quantity int) (models.NormalizedCart, error) {
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return SetCategoryQuantity(c, categoryID, quantity)
	})
}

// ChooseProductFromCategory resolves a category placeholder into a concrete
// product at quantity 1.
func (e *Engine) ChooseProductFromCategory(ctx context.Context, ownerKey, productID, categoryID string) (models.NormalizedCart, error) {
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return ChooseProduct(c, productID, categoryID)
	})
}

// SwitchProduct replaces one product line item with another at quantity 1.
func (e *Engine) SwitchProduct(ctx context.Context, ownerKey, originalProductID, newProductID string) (models.NormalizedCart, error) {
	return e.apply(ctx, ownerKey, func(c models.NormalizedCart) models.NormalizedCart {
		return SwitchProduct(c, originalProductID, newProductID)
	})
}

// Restore replaces the owner's cart with a stored snapshot, re-applying the
// canonical invariants first.
func (e *Engine) Restore(ctx context.Context, ownerKey string, snapshot models.NormalizedCart) (models.NormalizedCart, error) {
	return e.apply(ctx, ownerKey, func(models.NormalizedCart) models.NormalizedCart {
		return Canonicalize(snapshot)
	})
}

func (e *Engine) apply(ctx context.Context, ownerKey string, transform func(models.NormalizedCart) models.NormalizedCart) (models.NormalizedCart, error) {
	remote, err := e.store.GetCart(ctx, ownerKey)
	if err != nil {
		return models.NormalizedCart{}, fmt.Errorf("%w: %v", ErrCartUpdate, err)
	}

	next := transform(Normalize(remote))
	if err := e.store.ReplaceCart(ctx, ownerKey, next); err != nil {
		return models.NormalizedCart{}, fmt.Errorf("%w: %v", ErrCartUpdate, err)
	}

	// The write landed; a failed invalidation only delays visibility until
	// the cached views expire, so it must not fail the mutation.
	if err := e.caches.InvalidateCartViews(ctx, ownerKey); err != nil {
		log.Printf("Cart engine: failed to invalidate cart views for %s: %v", ownerKey, err)
	}

	return next, nil
}
