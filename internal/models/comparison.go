package models

import (
	"time"
)

// Provenance type constants for resolved comparison line items
const (
	ResolvedDirectProduct               = "DirectProduct"
	ResolvedCategoryReplacedWithProduct = "CategoryReplacedWithProduct"
	ResolvedReplacedWithCategoryProduct = "ReplacedWithCategoryProduct"
)

// Shop identifies a retail shop in a comparison
type Shop struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// ResolvedProduct is one priced, available line item in a shop's comparison
type ResolvedProduct struct {
	Product      ProductDetail `json:"product"`
	Quantity     int           `json:"quantity"`
	UnitPrice    float64       `json:"unit_price"`
	Discount     *Discount     `json:"discount,omitempty"`
	LineTotal    float64       `json:"line_total"`
	ResolvedType string        `json:"type"`
}

// MissingProduct is a product request a shop cannot fulfill
type MissingProduct struct {
	Product  ProductDetail `json:"product"`
	Quantity int           `json:"quantity"`
}

// MissingCategory is a category request a shop has no product for
type MissingCategory struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// ShopComparison is the server-computed resolution of the hybrid cart for one
// shop. The client never mutates it, only derives presentation state.
type ShopComparison struct {
	Shop              Shop              `json:"shop"`
	SpecificProducts  []ResolvedProduct `json:"specific_products"`
	MissingProducts   []MissingProduct  `json:"missing_products"`
	MissingCategories []MissingCategory `json:"missing_categories"`
	TotalPrice        *float64          `json:"total_price"`
}

// RankSummary describes how the selected shop's total relates to the cheapest
// and most expensive totals in the comparison set.
type RankSummary struct {
	CheapestTotal          float64 `json:"cheapest_total"`
	MostExpensiveTotal     float64 `json:"most_expensive_total"`
	IsCheapest             bool    `json:"is_cheapest"`
	IsMostExpensive        bool    `json:"is_most_expensive"`
	SavingsVsCheapest      float64 `json:"savings_vs_cheapest"`
	SavingsVsMostExpensive float64 `json:"savings_vs_most_expensive"`
}

// ComparisonView is the per-session view over the comparison list: the
// selected shop, its ranking, and the flipped (detail-open) line items.
type ComparisonView struct {
	Shops        []ShopComparison `json:"shops"`
	CurrentIndex int              `json:"current_index"`
	MoreThanOne  bool             `json:"more_carts_available"`
	Ranking      RankSummary      `json:"ranking"`
	FlippedItems []string         `json:"flipped_items"`
}

// SelectShopRequest jumps the comparison view to a shop index
type SelectShopRequest struct {
	Index int `json:"index"`
}

// FlipItemRequest toggles the detail state of one comparison line item
type FlipItemRequest struct {
	ItemKey string `json:"item_key" binding:"required"`
}

// NavigatorState is the persisted per-session comparison navigation state
type NavigatorState struct {
	Index        int       `json:"index"`
	FlippedItems []string  `json:"flipped_items"`
	UpdatedAt    time.Time `json:"updated_at"`
}
