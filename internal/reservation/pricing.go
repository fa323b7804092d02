package reservation

import "time"

// discountThresholdDays is the minimum inclusive duration for the monthly
// discount to apply. The discount is all-or-nothing: once the threshold is
// met it covers the whole booking, not per-28-day blocks.
const discountThresholdDays = 28

// Days returns the inclusive number of calendar days covered by [start, end].
// A single-day reservation counts as 1.
func Days(start, end time.Time) int {
	start = DateOnly(start)
	end = DateOnly(end)
	return int(end.Sub(start).Hours()/24) + 1
}

// ComputePrice returns the total price for booking [start, end] at the given
// daily rate, applying monthlyDiscount (an integer percentage) when the stay
// reaches 28 days.
//
// All arithmetic is integer. The discount amount pricePerDay*days*discount/100
// is truncated toward zero, so the final price rounds up by at most one minor
// unit; the exact values are pinned by tests.
func ComputePrice(pricePerDay int64, monthlyDiscount int, start, end time.Time) int64 {
	days := int64(Days(start, end))
	price := days * pricePerDay

	if days >= discountThresholdDays && monthlyDiscount > 0 {
		price -= price * int64(monthlyDiscount) / 100
	}

	return price
}
