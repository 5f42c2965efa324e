package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_NoDiscounts(t *testing.T) {
	lines := []Line{LineFromFloats(757.63, 757.63, 2)}
	q := Compute(lines, decimal.Zero, decimal.Zero, decimal.Zero)

	if !q.Subtotal.Equal(dec("1515.26")) {
		t.Fatalf("subtotal = %s, want 1515.26", q.Subtotal)
	}
	if !q.Discount.IsZero() {
		t.Fatalf("discount = %s, want 0", q.Discount)
	}
	if !q.Total.Equal(dec("1515.26")) {
		t.Fatalf("total = %s, want 1515.26", q.Total)
	}
}

func TestCompute_ItemDiscountAndPromo(t *testing.T) {
	lines := []Line{LineFromFloats(700, 765.25, 1)}
	q := Compute(lines, dec("50"), decimal.Zero, decimal.Zero)

	if !q.Subtotal.Equal(dec("765.25")) {
		t.Fatalf("subtotal = %s, want 765.25", q.Subtotal)
	}
	if !q.Discount.Equal(dec("65.25")) {
		t.Fatalf("discount = %s, want 65.25", q.Discount)
	}
	// subtotal - discount - promo = 765.25 - 65.25 - 50
	if !q.Total.Equal(dec("650")) {
		t.Fatalf("total = %s, want 650", q.Total)
	}
}

func TestCompute_MissingOriginalPriceMeansNoDiscount(t *testing.T) {
	lines := []Line{
		LineFromFloats(100, 0, 3),
		LineFromFloats(40, 50, 2),
	}
	q := Compute(lines, decimal.Zero, decimal.Zero, decimal.Zero)

	if !q.Subtotal.Equal(dec("400")) {
		t.Fatalf("subtotal = %s, want 400", q.Subtotal)
	}
	if !q.Discount.Equal(dec("20")) {
		t.Fatalf("discount = %s, want 20", q.Discount)
	}
	if !q.Total.Equal(dec("380")) {
		t.Fatalf("total = %s, want 380", q.Total)
	}
}

func TestCompute_NegativeGapIgnored(t *testing.T) {
	// Charged price above the reference price never produces a negative
	// discount.
	lines := []Line{LineFromFloats(120, 100, 1)}
	q := Compute(lines, decimal.Zero, decimal.Zero, decimal.Zero)

	if !q.Discount.IsZero() {
		t.Fatalf("discount = %s, want 0", q.Discount)
	}
	if !q.Subtotal.Equal(dec("100")) {
		t.Fatalf("subtotal = %s, want 100", q.Subtotal)
	}
}

func TestCompute_TotalClampsAtZero(t *testing.T) {
	lines := []Line{LineFromFloats(30, 30, 1)}
	q := Compute(lines, dec("100"), decimal.Zero, decimal.Zero)

	if !q.Total.IsZero() {
		t.Fatalf("total = %s, want 0", q.Total)
	}
	if !q.Subtotal.Equal(dec("30")) {
		t.Fatalf("subtotal = %s, want 30", q.Subtotal)
	}
}

func TestCompute_ChargesAddToTotal(t *testing.T) {
	lines := []Line{LineFromFloats(200, 250, 2)}
	q := Compute(lines, dec("10"), dec("15"), dec("60"))

	// 500 - 100 - 10 + 15 + 60
	if !q.Total.Equal(dec("465")) {
		t.Fatalf("total = %s, want 465", q.Total)
	}
}

func TestCompute_EmptyLines(t *testing.T) {
	q := Compute(nil, decimal.Zero, decimal.Zero, decimal.Zero)
	if !q.Subtotal.IsZero() || !q.Discount.IsZero() || !q.Total.IsZero() {
		t.Fatalf("empty lines should produce a zero quote: %+v", q)
	}
}
