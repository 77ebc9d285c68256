package pricing

import (
	"testing"
	"time"

	"cartscout-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func TestEffectivePriceNoDiscount(t *testing.T) {
	assert.Equal(t, 10.0, EffectivePrice(10.0, nil, fixedClock))
}

func TestEffectivePriceDiscountWithoutEndDate(t *testing.T) {
	d := &models.Discount{Price: 7.5}
	assert.Equal(t, 7.5, EffectivePrice(10.0, d, fixedClock))
}

func TestEffectivePriceDiscountStillValid(t *testing.T) {
	validTo := testNow.Add(48 * time.Hour)
	d := &models.Discount{Price: 7.5, ValidTo: &validTo}
	assert.Equal(t, 7.5, EffectivePrice(10.0, d, fixedClock))
}

func TestEffectivePriceDiscountExpired(t *testing.T) {
	validTo := testNow.Add(-48 * time.Hour)
	d := &models.Discount{Price: 7.5, ValidTo: &validTo}
	assert.Equal(t, 10.0, EffectivePrice(10.0, d, fixedClock))
}

func TestEffectivePriceDiscountEndingExactlyNow(t *testing.T) {
	// Validity requires the end date to be strictly in the future.
	validTo := testNow
	d := &models.Discount{Price: 7.5, ValidTo: &validTo}
	assert.Equal(t, 10.0, EffectivePrice(10.0, d, fixedClock))
}

func TestLineTotal(t *testing.T) {
	validTo := testNow.Add(24 * time.Hour)
	d := &models.Discount{Price: 2.5, ValidTo: &validTo}
	assert.InDelta(t, 7.5, LineTotal(4.0, d, 3, fixedClock), 0.0001)
	assert.InDelta(t, 12.0, LineTotal(4.0, nil, 3, fixedClock), 0.0001)
}

func TestDiscountPercentage(t *testing.T) {
	list := 10.0
	discounted := 7.5
	pct := DiscountPercentage(&list, &discounted)
	if assert.NotNil(t, pct) {
		assert.Equal(t, 25, *pct)
	}
}

func TestDiscountPercentageRounds(t *testing.T) {
	list := 2.99
	discounted := 1.99
	pct := DiscountPercentage(&list, &discounted)
	if assert.NotNil(t, pct) {
		assert.Equal(t, 33, *pct)
	}
}

func TestDiscountPercentageGuards(t *testing.T) {
	list := 10.0
	higher := 12.0
	zero := 0.0
	negative := -5.0

	assert.Nil(t, DiscountPercentage(nil, &list))
	assert.Nil(t, DiscountPercentage(&list, nil))
	assert.Nil(t, DiscountPercentage(&zero, &list))
	assert.Nil(t, DiscountPercentage(&negative, &list))
	// A "discount" at or above the list price is not a discount.
	assert.Nil(t, DiscountPercentage(&list, &higher))
	assert.Nil(t, DiscountPercentage(&list, &list))
}
