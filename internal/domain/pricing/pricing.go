package pricing

import "github.com/shopspring/decimal"

// Line is one order line as submitted by the client. OriginalPrice may be
// zero, meaning the line carries no discount and Price is the reference.
type Line struct {
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Quantity      int
}

// Quote holds every monetary field derived for an order.
type Quote struct {
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	PromoDiscount  decimal.Decimal
	AdditionalCost decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
}

// Compute derives an order's money from its lines and a pre-validated promo
// discount. Per line, the subtotal uses the original (pre-discount) price and
// the discount is the gap to the charged price, floored at zero. The grand
// total is clamped at zero so an oversized promo never produces a negative
// amount owed.
func Compute(lines []Line, promoDiscount, additionalCost, deliveryCharge decimal.Decimal) Quote {
	subtotal := decimal.Zero
	discount := decimal.Zero

	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))

		base := l.Price
		if l.OriginalPrice.IsPositive() {
			base = l.OriginalPrice
			if gap := l.OriginalPrice.Sub(l.Price); gap.IsPositive() {
				discount = discount.Add(gap.Mul(qty))
			}
		}
		subtotal = subtotal.Add(base.Mul(qty))
	}

	total := subtotal.
		Sub(discount).
		Sub(promoDiscount).
		Add(additionalCost).
		Add(deliveryCharge)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal:       subtotal,
		Discount:       discount,
		PromoDiscount:  promoDiscount,
		AdditionalCost: additionalCost,
		DeliveryCharge: deliveryCharge,
		Total:          total,
	}
}

// LineFromFloats builds a Line from the float fields used at the API and
// storage boundaries.
func LineFromFloats(price, originalPrice float64, quantity int) Line {
	return Line{
		Price:         decimal.NewFromFloat(price),
		OriginalPrice: decimal.NewFromFloat(originalPrice),
		Quantity:      quantity,
	}
}
