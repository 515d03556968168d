package analytics

import "math"

// PriceRange is an open interval: a price counts when Min < price < Max
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// Contains applies the strict threshold test on both ends
func (r PriceRange) Contains(price float64) bool {
	return price > r.Min && price < r.Max
}

// Bucket is one bar of the bookings chart
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PriceBuckets are evaluated in this order. The strict comparisons leave
// prices of exactly 0, 100 and 200 outside every bucket; kept as-is.
var PriceBuckets = []PriceRange{
	{Label: "Cheap", Min: 0, Max: 100},
	{Label: "Normal", Min: 100, Max: 200},
	{Label: "Expensive", Min: 200, Max: math.Inf(1)},
}
