package cart

import (
	"testing"

	"cartscout-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func productEntry(barcode string, quantity int) models.RemoteProductEntry {
	return models.RemoteProductEntry{
		Product:  models.ProductRef{Barcode: barcode},
		Quantity: quantity,
	}
}

func categoryEntry(id string, quantity int) models.RemoteCategoryEntry {
	return models.RemoteCategoryEntry{
		Category: models.CategoryRef{ID: id},
		Quantity: quantity,
	}
}

func TestNormalizeNilCart(t *testing.T) {
	normalized := Normalize(nil)
	assert.NotNil(t, normalized.ProductItems)
	assert.NotNil(t, normalized.CategoryItems)
	assert.Empty(t, normalized.ProductItems)
	assert.Empty(t, normalized.CategoryItems)
}

func TestNormalizeSplitsProductsAndCategories(t *testing.T) {
	remote := &models.RemoteCart{
		SpecificProducts: []models.RemoteProductEntry{
			productEntry("590001", 2),
			productEntry("590002", 1),
		},
		Categories: []models.RemoteCategoryEntry{
			categoryEntry("dairy", 3),
		},
	}

	normalized := Normalize(remote)
	assert.Equal(t, []models.ProductItem{
		{ProductID: "590001", Quantity: 2},
		{ProductID: "590002", Quantity: 1},
	}, normalized.ProductItems)
	assert.Equal(t, []models.CategoryItem{
		{CategoryID: "dairy", Quantity: 3},
	}, normalized.CategoryItems)
}

func TestNormalizeDropsNonPositiveQuantities(t *testing.T) {
	remote := &models.RemoteCart{
		SpecificProducts: []models.RemoteProductEntry{
			productEntry("590001", 0),
			productEntry("590002", 2),
		},
		Categories: []models.RemoteCategoryEntry{
			categoryEntry("dairy", -1),
		},
	}

	normalized := Normalize(remote)
	assert.Equal(t, []models.ProductItem{{ProductID: "590002", Quantity: 2}}, normalized.ProductItems)
	assert.Empty(t, normalized.CategoryItems)
}

func TestNormalizeDuplicatesLastWriteWins(t *testing.T) {
	remote := &models.RemoteCart{
		SpecificProducts: []models.RemoteProductEntry{
			productEntry("590001", 1),
			productEntry("590002", 5),
			productEntry("590001", 4),
		},
	}

	normalized := Normalize(remote)
	assert.Equal(t, []models.ProductItem{
		{ProductID: "590001", Quantity: 4},
		{ProductID: "590002", Quantity: 5},
	}, normalized.ProductItems)
}

func TestCanonicalizeIdempotent(t *testing.T) {
	remote := &models.RemoteCart{
		SpecificProducts: []models.RemoteProductEntry{
			productEntry("590001", 2),
			productEntry("590002", 1),
		},
		Categories: []models.RemoteCategoryEntry{
			categoryEntry("dairy", 3),
			categoryEntry("bakery", 1),
		},
	}

	once := Normalize(remote)
	twice := Canonicalize(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, twice, Canonicalize(twice))
}

func TestCanonicalizeEnforcesInvariants(t *testing.T) {
	dirty := models.NormalizedCart{
		ProductItems: []models.ProductItem{
			{ProductID: "590001", Quantity: 1},
			{ProductID: "590002", Quantity: 0},
			{ProductID: "590001", Quantity: 7},
		},
		CategoryItems: []models.CategoryItem{
			{CategoryID: "dairy", Quantity: 2},
			{CategoryID: "", Quantity: 3},
		},
	}

	clean := Canonicalize(dirty)
	assert.Equal(t, []models.ProductItem{{ProductID: "590001", Quantity: 7}}, clean.ProductItems)
	assert.Equal(t, []models.CategoryItem{{CategoryID: "dairy", Quantity: 2}}, clean.CategoryItems)

	seen := make(map[string]bool)
	for _, item := range clean.ProductItems {
		assert.False(t, seen[item.ProductID], "duplicate product id %s", item.ProductID)
		seen[item.ProductID] = true
	}
}
