package models

import (
	"time"
)

// ProductDetail describes a product as delivered by the upstream catalog
type ProductDetail struct {
	Barcode    string  `json:"barcode"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand,omitempty"`
	CategoryID string  `json:"category_id,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
	UnitSize   string  `json:"unit_size,omitempty"`
	ListPrice  float64 `json:"list_price"`
}

// Discount is a per-product, per-shop discount with an optional validity
// window. A discount with no end date is treated as currently valid.
type Discount struct {
	Price   float64    `json:"price"`
	ValidTo *time.Time `json:"valid_to,omitempty"`
}

// ProductLookup is the upstream barcode-lookup result
type ProductLookup struct {
	Product  ProductDetail `json:"product"`
	Discount *Discount     `json:"discount,omitempty"`
}

// ProductResponse is the barcode-lookup response, list price annotated with
// the currently effective price and discount percentage when one applies
type ProductResponse struct {
	Product            ProductDetail `json:"product"`
	EffectivePrice     float64       `json:"effective_price"`
	DiscountPercentage *int          `json:"discount_percentage,omitempty"`
}
