package order

// PricingPolicy holds the checkout amounts that drive shipping.
type PricingPolicy struct {
	FreeShippingThreshold float64
	ShippingFee           float64
}

// PricedLine is one cart line as seen by the pricing calculator.
type PricedLine struct {
	UnitPrice float64
	Quantity  int
}

// Quote is the priced result of a cart.
type Quote struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// PriceCart computes the checkout quote for a set of cart lines. Shipping
// is waived only when the subtotal strictly exceeds the free-shipping
// threshold; a subtotal exactly at the threshold still pays the fee. An
// empty cart prices to an all-zero quote, shipping included.
func PriceCart(lines []PricedLine, policy PricingPolicy) Quote {
	var q Quote
	if len(lines) == 0 {
		return q
	}

	for _, l := range lines {
		q.Subtotal += l.UnitPrice * float64(l.Quantity)
	}
	if q.Subtotal <= policy.FreeShippingThreshold {
		q.Shipping = policy.ShippingFee
	}
	q.Total = q.Subtotal + q.Shipping
	return q
}
