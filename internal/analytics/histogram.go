package analytics

import "evently-client/internal/bookings"

// PriceHistogram counts bookings per price bucket. It reads the snapshot
// only and has no side effects.
func PriceHistogram(list []bookings.Booking) []Bucket {
	out := make([]Bucket, 0, len(PriceBuckets))
	for _, r := range PriceBuckets {
		count := 0
		for _, b := range list {
			if r.Contains(b.Event.Price) {
				count++
			}
		}
		out = append(out, Bucket{Label: r.Label, Count: count})
	}
	return out
}
