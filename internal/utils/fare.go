package utils

const (
	taxRate              = 0.08
	vipDiscountRate      = 0.10
	frequentDiscountRate = 0.05
	highValueDiscount    = 0.03

	frequentBookingFloor = 10
	highValueSpentFloor  = 1000.0
)

// CustomerProfile is the slice of customer state the fare calculator needs.
type CustomerProfile struct {
	IsVip         bool
	TotalBookings int
	TotalSpent    float64
}

// FareBreakdown is the result of a fare computation.
type FareBreakdown struct {
	Base     float64
	Discount float64
	Tax      float64
	Total    float64
}

// ComputeFare prices a trip from the vehicle's per-distance rate, the trip
// distance, and the customer profile.
//
// Discounts are additive and uncapped, so Total can go negative for a
// sufficiently discounted fare. Tax is charged on the pre-discount base, not
// on the discounted amount; both behaviors are kept for compatibility with
// historical fare data.
func ComputeFare(ratePerKm, distance float64, p CustomerProfile) FareBreakdown {
	base := ratePerKm * distance

	discount := 0.0
	if p.IsVip {
		discount += base * vipDiscountRate
	}
	if p.TotalBookings > frequentBookingFloor {
		discount += base * frequentDiscountRate
	}
	if p.TotalSpent > highValueSpentFloor {
		discount += base * highValueDiscount
	}

	tax := base * taxRate

	return FareBreakdown{
		Base:     base,
		Discount: discount,
		Tax:      tax,
		Total:    base - discount + tax,
	}
}
