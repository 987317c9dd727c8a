package model

import "math"

// RollEstimate holds the results of a master roll purchasing calculation.
type RollEstimate struct {
	TotalPieceWidth  int     `json:"total_piece_width"`  // Σ width × demand (mm)
	TotalMeters      float64 `json:"total_meters"`       // Same in metres
	RollsNeededExact float64 `json:"rolls_needed_exact"` // Material bound, fractional
	RollsNeededMin   int     `json:"rolls_needed_min"`   // Ceiling of the material bound
	RollsWithWaste   int     `json:"rolls_with_waste"`   // Recommended rolls including waste factor
	WastePercent     float64 `json:"waste_percent"`      // Waste factor applied (e.g., 5 for 5%)
	EstimatedCost    float64 `json:"estimated_cost"`     // Total cost if pricing available
	PricePerRoll     float64 `json:"price_per_roll"`     // Price used for estimation
}

// CalculateRollEstimate computes a lower bound on the master rolls an order
// needs from the total ordered width alone, plus a purchase recommendation
// with an additional waste percentage.
func CalculateRollEstimate(order Order, wastePercent, pricePerRoll float64) RollEstimate {
	total := 0
	for _, p := range order.Pieces {
		total += p.Width * p.Demand
	}

	if order.RollWidth <= 0 {
		return RollEstimate{
			TotalPieceWidth: total,
			TotalMeters:     float64(total) / 1000.0,
			WastePercent:    wastePercent,
		}
	}

	exact := float64(total) / float64(order.RollWidth)
	minRolls := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minRolls {
		withWaste = minRolls
	}

	return RollEstimate{
		TotalPieceWidth:  total,
		TotalMeters:      float64(total) / 1000.0,
		RollsNeededExact: exact,
		RollsNeededMin:   minRolls,
		RollsWithWaste:   withWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    float64(withWaste) * pricePerRoll,
		PricePerRoll:     pricePerRoll,
	}
}
