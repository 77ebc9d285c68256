package models

import (
	"time"
)

// Line item type constants
const (
	ItemTypeProduct  = "product"
	ItemTypeCategory = "category"
)

// ProductItem is a canonical cart line item for a specific product
type ProductItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CategoryItem is a canonical cart line item for a product category
type CategoryItem struct {
	CategoryID string `json:"category_id"`
	Quantity   int    `json:"quantity"`
}

// NormalizedCart is the canonical client-side cart representation: two ordered,
// de-duplicated line item lists. This is also the full-replacement payload
// written back to the upstream store on every mutation.
type NormalizedCart struct {
	ProductItems  []ProductItem  `json:"product_items"`
	CategoryItems []CategoryItem `json:"category_items"`
}

// CategoryRef identifies a category in upstream cart reads
type CategoryRef struct {
	ID string `json:"id"`
}

// ProductRef identifies a product in upstream cart reads
type ProductRef struct {
	Barcode string `json:"barcode"`
}

// RemoteCategoryEntry is one category entry in an upstream cart read
type RemoteCategoryEntry struct {
	Category CategoryRef `json:"category"`
	Quantity int         `json:"quantity"`
}

// RemoteProductEntry is one specific-product entry in an upstream cart read
type RemoteProductEntry struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// RemoteCart is the cart shape the upstream store returns on reads.
type RemoteCart struct {
	Categories       []RemoteCategoryEntry `json:"categories"`
	SpecificProducts []RemoteProductEntry  `json:"specific_products"`
}

// HybridCart is the upstream's merged cart view, used only to answer
// "is this barcode in the cart and at what quantity".
type HybridCart struct {
	SpecificProducts []RemoteProductEntry `json:"specific_products"`
}

// AddProductRequest adds a product line item to the cart
type AddProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddCategoryRequest adds a category line item to the cart
type AddCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Quantity   int    `json:"quantity"`
}

// UpdateQuantityRequest updates a line item's quantity; quantities below one
// remove the line item
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ChooseProductRequest resolves a category line item into a concrete product
type ChooseProductRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// SwitchProductRequest replaces one product line item with another
type SwitchProductRequest struct {
	OriginalProductID string `json:"original_product_id" binding:"required"`
	NewProductID      string `json:"new_product_id" binding:"required"`
}

// CartContainsResponse reports the quantity of a barcode in the hybrid cart
type CartContainsResponse struct {
	Barcode  string `json:"barcode"`
	InCart   bool   `json:"in_cart"`
	Quantity int    `json:"quantity"`
}

// ArchivedCart is a stored snapshot of a canonical cart
type ArchivedCart struct {
	ID        int            `json:"id"`
	OwnerKey  string         `json:"-"`
	Name      string         `json:"name"`
	Cart      NormalizedCart `json:"cart"`
	ItemCount int            `json:"item_count"`
	CreatedAt time.Time      `json:"created_at"`
}

// ArchiveCartRequest snapshots the current cart under a name
type ArchiveCartRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ArchivedCartListResponse lists a user's archived carts
type ArchivedCartListResponse struct {
	Archives []ArchivedCart `json:"archives"`
	Total    int            `json:"total"`
}
