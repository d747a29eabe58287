package models

// DeliveryQuote is the courier fee for one destination. Fallback is set when
// the routing provider could not be reached and the minimum fee was applied.
type DeliveryQuote struct {
	DistanceKm float64 `json:"distanceKm"`
	Fee        float64 `json:"fee"`
	OutOfRange bool    `json:"outOfRange"`
	Fallback   bool    `json:"fallback"`
}
