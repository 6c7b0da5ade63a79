package loyalty

import "rentwear/internal/domain/pricing"

// thresholds lists the completed-rental count at which each tier starts, highest first.
var thresholds = []struct {
	Rentals int
	Tier    pricing.Tier
}{
	{Rentals: 20, Tier: pricing.TierPlatinum},
	{Rentals: 10, Tier: pricing.TierGold},
	{Rentals: 5, Tier: pricing.TierSilver},
}

// TierFor returns the tier earned by a renter with the given number of completed rentals.
func TierFor(completedRentals int) pricing.Tier {
	for _, t := range thresholds {
		if completedRentals >= t.Rentals {
			return t.Tier
		}
	}
	return pricing.TierBronze
}

// Upgrade returns the tier after a rental count change, never downgrading current.
func Upgrade(current pricing.Tier, completedRentals int) (pricing.Tier, bool) {
	earned := TierFor(completedRentals)
	if earned.Rank() > current.Rank() {
		return earned, true
	}
	return current, false
}

// NextThreshold reports how many completed rentals unlock the next tier, or 0 at the top.
func NextThreshold(completedRentals int) int {
	next := 0
	for _, t := range thresholds {
		if completedRentals < t.Rentals {
			next = t.Rentals
		}
	}
	return next
}
