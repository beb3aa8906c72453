package preparation

import "khp/internal/httpx"

// Remaining is the display quantity after a removal, clamped at zero.
func Remaining(available, requested float64) float64 {
	if requested >= available {
		return 0
	}
	return available - requested
}

// ValidateRemoval guards every stock-decreasing operation. The message for
// an oversized request is fixed; clients surface it verbatim.
func ValidateRemoval(requested, available float64) error {
	if requested <= 0 {
		return httpx.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if requested > available {
		return httpx.NewValidationError("quantity", "Cannot remove - exceeds available stock")
	}
	return nil
}

// ValidateMove adds the source/destination distinctness rule on top of the
// removal guard.
func ValidateMove(requested, available float64, sourceID, destinationID string) error {
	if sourceID == destinationID {
		return httpx.NewValidationError("destination_location_id", "source and destination must differ")
	}
	return ValidateRemoval(requested, available)
}

// DestinationCandidates is the move-stock picker list: locations already
// holding this preparation keep their quantities, every other known
// location appears with quantity 0.
func DestinationCandidates(stocks []LocationStock, all []LocationRef) []LocationStock {
	seen := make(map[string]bool, len(stocks))
	candidates := make([]LocationStock, 0, len(all))

	for _, st := range stocks {
		seen[st.LocationID] = true
		candidates = append(candidates, st)
	}
	for _, loc := range all {
		if !seen[loc.ID] {
			candidates = append(candidates, LocationStock{
				LocationID:   loc.ID,
				LocationName: loc.Name,
				Quantity:     0,
			})
		}
	}
	return candidates
}
