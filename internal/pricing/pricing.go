package pricing

import (
	"math"
	"time"

	"cartscout-backend/internal/models"
)

// Clock supplies the evaluation time for discount validity checks. Production
// code passes time.Now; tests pass a fixed clock.
type Clock func() time.Time

// EffectivePrice resolves the price actually charged for a product at a shop:
// the discount price when the discount is currently valid, else the list
// price. A discount without an end date is valid; one with an end date is
// valid only while that date is strictly in the future.
func EffectivePrice(listPrice float64, discount *models.Discount, now Clock) float64 {
	if discount == nil {
		return listPrice
	}
	if discount.ValidTo == nil {
		return discount.Price
	}
	if discount.ValidTo.After(now()) {
		return discount.Price
	}
	return listPrice
}

// LineTotal computes the charged total for one comparison line item.
func LineTotal(listPrice float64, discount *models.Discount, quantity int, now Clock) float64 {
	return EffectivePrice(listPrice, discount, now) * float64(quantity)
}

// DiscountPercentage returns the rounded percentage saved by a discount
// price relative to a list price, or nil when the inputs cannot yield a
// sensible percentage (missing values, non-positive list price, or a
// "discount" that does not actually undercut the list price).
func DiscountPercentage(listPrice, discountPrice *float64) *int {
	if listPrice == nil || discountPrice == nil {
		return nil
	}
	if math.IsNaN(*listPrice) || math.IsNaN(*discountPrice) {
		return nil
	}
	if *listPrice <= 0 {
		return nil
	}
	if *discountPrice >= *listPrice {
		return nil
	}
	pct := int(math.Round((*listPrice - *discountPrice) / *listPrice * 100))
	return &pct
}
