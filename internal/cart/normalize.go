package cart

import (
	"cartscout-backend/internal/models"
)

// Normalize converts whatever cart shape the upstream store returned into the
// canonical pair of ordered line item lists. It is total: a nil cart yields
// two empty lists, and it never panics. Duplicate ids should not occur
// upstream; if they do, the last occurrence wins and earlier quantities are
// discarded.
func Normalize(remote *models.RemoteCart) models.NormalizedCart {
	normalized := models.NormalizedCart{
		ProductItems:  []models.ProductItem{},
		CategoryItems: []models.CategoryItem{},
	}
	if remote == nil {
		return normalized
	}

	productIndex := make(map[string]int)
	for _, entry := range remote.SpecificProducts {
		if entry.Product.Barcode == "" || entry.Quantity <= 0 {
			continue
		}
		item := models.ProductItem{ProductID: entry.Product.Barcode, Quantity: entry.Quantity}
		if i, seen := productIndex[item.ProductID]; seen {
			normalized.ProductItems[i] = item
			continue
		}
		productIndex[item.ProductID] = len(normalized.ProductItems)
		normalized.ProductItems = append(normalized.ProductItems, item)
	}

	categoryIndex := make(map[string]int)
	for _, entry := range remote.Categories {
		if entry.Category.ID == "" || entry.Quantity <= 0 {
			continue
		}
		item := models.CategoryItem{CategoryID: entry.Category.ID, Quantity: entry.Quantity}
		if i, seen := categoryIndex[item.CategoryID]; seen {
			normalized.CategoryItems[i] = item
			continue
		}
		categoryIndex[item.CategoryID] = len(normalized.CategoryItems)
		normalized.CategoryItems = append(normalized.CategoryItems, item)
	}

	return normalized
}

// Canonicalize re-applies the canonical cart invariants to a cart that is
// already in normalized shape: duplicate ids collapse (last write wins) and
// non-positive quantities are dropped. Canonicalize(Normalize(c)) equals
// Normalize(c) for every cart, which is what lets stored snapshots be
// replayed safely.
func Canonicalize(c models.NormalizedCart) models.NormalizedCart {
	out := models.NormalizedCart{
		ProductItems:  []models.ProductItem{},
		CategoryItems: []models.CategoryItem{},
	}

	productIndex := make(map[string]int)
	for _, item := range c.ProductItems {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		if i, seen := productIndex[item.ProductID]; seen {
			out.ProductItems[i] = item
			continue
		}
		productIndex[item.ProductID] = len(out.ProductItems)
		out.ProductItems = append(out.ProductItems, item)
	}

	categoryIndex := make(map[string]int)
	for _, item := range c.CategoryItems {
		if item.CategoryID == "" || item.Quantity <= 0 {
			continue
		}
		if i, seen := categoryIndex[item.CategoryID]; seen {
			out.CategoryItems[i] = item
			continue
		}
		categoryIndex[item.CategoryID] = len(out.CategoryItems)
		out.CategoryItems = append(out.CategoryItems, item)
	}

	return out
}
