package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddLoyaltyPointsTierThresholds(t *testing.T) {
	cases := []struct {
		points int
		tier   LoyaltyTier
	}{
		{0, TierBronze},
		{500, TierBronze},
		{501, TierSilver},
		{2000, TierSilver},
		{2001, TierGold},
		{5000, TierGold},
		{5001, TierPlatinum},
	}

	for _, c := range cases {
		u := &User{}
		u.AddLoyaltyPoints(c.points, "purchase", "ZK000001")
		require.Equal(t, c.tier, u.LoyaltyTier, "%d 點應為 %s", c.points, c.tier)
	}
}

func TestAddLoyaltyPointsAppendsHistory(t *testing.T) {
	u := &User{LoyaltyPoints: 100}

	u.AddLoyaltyPoints(50, "review", "P42")
	u.AddLoyaltyPoints(-30, "redeem", "ZK000009")

	require.Equal(t, 120, u.LoyaltyPoints)
	require.Len(t, u.LoyaltyHistory, 2, "每次異動都要留ledger")
	require.Equal(t, "review", u.LoyaltyHistory[0].Action)
	require.Equal(t, -30, u.LoyaltyHistory[1].Points)
}

func TestTierDowngradeOnDeduction(t *testing.T) {
	u := &User{LoyaltyPoints: 600, LoyaltyTier: TierSilver}

	u.AddLoyaltyPoints(-200, "redeem", "ZK000010")

	require.Equal(t, TierBronze, u.LoyaltyTier, "扣點後tier要重算")
}

func TestIsValidUserStatus(t *testing.T) {
	require.True(t, IsValidUserStatus("active"))
	require.True(t, IsValidUserStatus("banned"))
	require.False(t, IsValidUserStatus("deleted"))
}
