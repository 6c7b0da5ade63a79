package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentwear/internal/domain/pricing"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		rentals int
		want    pricing.Tier
	}{
		{0, pricing.TierBronze},
		{4, pricing.TierBronze},
		{5, pricing.TierSilver},
		{9, pricing.TierSilver},
		{10, pricing.TierGold},
		{19, pricing.TierGold},
		{20, pricing.TierPlatinum},
		{120, pricing.TierPlatinum},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.rentals), "rentals=%d", tt.rentals)
	}
}

func TestUpgradeNeverDowngrades(t *testing.T) {
	next, upgraded := Upgrade(pricing.TierBronze, 5)
	assert.True(t, upgraded)
	assert.Equal(t, pricing.TierSilver, next)

	next, upgraded = Upgrade(pricing.TierGold, 6)
	assert.False(t, upgraded)
	assert.Equal(t, pricing.TierGold, next)

	next, upgraded = Upgrade(pricing.TierSilver, 7)
	assert.False(t, upgraded)
	assert.Equal(t, pricing.TierSilver, next)
}

func TestNextThreshold(t *testing.T) {
	assert.Equal(t, 5, NextThreshold(0))
	assert.Equal(t, 10, NextThreshold(5))
	assert.Equal(t, 20, NextThreshold(12))
	assert.Zero(t, NextThreshold(25))
}
