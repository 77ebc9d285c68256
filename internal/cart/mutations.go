package cart

import (
	"cartscout-backend/internal/models"
)

// Pure line-item list transforms. Each takes and returns a canonical cart;
// the input is never modified. Callers are expected to start from a
// Normalize/Canonicalize result.

// AddProductItem appends a new product line item. Callers must not pass an id
// already present in the cart; the update operations exist for that case and
// this transform does not merge quantities.
func AddProductItem(c models.NormalizedCart, productID string, quantity int) models.NormalizedCart {
	out := clone(c)
	out.ProductItems = append(out.ProductItems, models.ProductItem{
		ProductID: productID,
		Quantity:  quantity,
	})
	return out
}

// AddCategoryItem appends a new category line item, same non-duplication
// precondition as AddProductItem.
func AddCategoryItem(c models.NormalizedCart, categoryID string, quantity int) models.NormalizedCart {
	out := clone(c)
	out.CategoryItems = append(out.CategoryItems, models.CategoryItem{
		CategoryID: categoryID,
		Quantity:   quantity,
	})
	return out
}

// RemoveProductItem filters out the product line item with the given id.
// Absence of a match is a no-op, not an error.
func RemoveProductItem(c models.NormalizedCart, productID string) models.NormalizedCart {
	out := clone(c)
	items := out.ProductItems[:0]
	for _, item := range out.ProductItems {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	out.ProductItems = items
	return out
}

// RemoveCategoryItem filters out the category line item with the given id.
func RemoveCategoryItem(c models.NormalizedCart, categoryID string) models.NormalizedCart {
	out := clone(c)
	items := out.CategoryItems[:0]
	for _, item := range out.CategoryItems {
		if item.CategoryID != categoryID {
			items = append(items, item)
		}
	}
	out.CategoryItems = items
	return out
}

// SetProductQuantity replaces the matching line item's quantity in place,
// preserving the order of all other items. A quantity below one removes the
// line item instead.
func SetProductQuantity(c models.NormalizedCart, productID string, quantity int) models.NormalizedCart {
	if quantity < 1 {
		return RemoveProductItem(c, productID)
	}
	out := clone(c)
	for i, item := range out.ProductItems {
		if item.ProductID == productID {
			out.ProductItems[i].Quantity = quantity
		}
	}
	return out
}

// SetCategoryQuantity is SetProductQuantity for category line items.
func SetCategoryQuantity(c models.NormalizedCart, categoryID string, quantity int) models.NormalizedCart {
	if quantity < 1 {
		return RemoveCategoryItem(c, categoryID)
	}
	out := clone(c)
	for i, item := range out.CategoryItems {
		if item.CategoryID == categoryID {
			out.CategoryItems[i].Quantity = quantity
		}
	}
	return out
}

// ChooseProduct resolves a category placeholder into a concrete product: the
// category line item is removed (if present) and a product line item with
// quantity 1 is appended. The category's quantity is not carried over; the
// caller re-prompts for quantity after a substitution.
func ChooseProduct(c models.NormalizedCart, productID, categoryID string) models.NormalizedCart {
	out := RemoveCategoryItem(c, categoryID)
	return AddProductItem(out, productID, 1)
}

// SwitchProduct replaces one product line item with another at quantity 1.
// As with ChooseProduct, the original quantity is not inherited.
func SwitchProduct(c models.NormalizedCart, originalProductID, newProductID string) models.NormalizedCart {
	out := RemoveProductItem(c, originalProductID)
	return AddProductItem(out, newProductID, 1)
}

func clone(c models.NormalizedCart) models.NormalizedCart {
	out := models.NormalizedCart{
		ProductItems:  make([]models.ProductItem, len(c.ProductItems)),
		CategoryItems: make([]models.CategoryItem, len(c.CategoryItems)),
	}
	copy(out.ProductItems, c.ProductItems)
	copy(out.CategoryItems, c.CategoryItems)
	return out
}
