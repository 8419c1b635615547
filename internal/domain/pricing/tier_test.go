package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTier(t *testing.T) {
	cases := []struct {
		quantity string
		want     TierRank
	}{
		{"0", 1},
		{"0.5", 1},
		{"1", 1},
		{"4.99", 1},
		{"5", 2},
		{"9.99", 2},
		{"10", 3},
		{"29.5", 3},
		{"30", 4},
		{"49.99", 4},
		{"50", 5},
		{"99.9", 5},
		{"100", 6},
		{"2500", 6},
	}

	for _, tc := range cases {
		t.Run(tc.quantity+"kg", func(t *testing.T) {
			q, err := decimal.NewFromString(tc.quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ResolveTier(q))
		})
	}
}

func TestResolveTier_MonotoneAndBounded(t *testing.T) {
	// Sweep 0..120 kg in 0.25 kg steps: the tier must never decrease and
	// must always stay within 1..6.
	step := decimal.NewFromFloat(0.25)
	prev := MinTier
	for q := decimal.Zero; q.LessThanOrEqual(decimal.NewFromInt(120)); q = q.Add(step) {
		rank := ResolveTier(q)
		require.True(t, rank.IsValid(), "tier out of range at %s kg", q)
		require.GreaterOrEqual(t, rank, prev, "tier decreased at %s kg", q)
		prev = rank
	}
}

func TestNextBreakpoint(t *testing.T) {
	t.Run("returns the lower bound of the next tier", func(t *testing.T) {
		bp, ok := NextBreakpoint(1)
		require.True(t, ok)
		assert.True(t, bp.Equal(decimal.NewFromInt(5)))

		bp, ok = NextBreakpoint(5)
		require.True(t, ok)
		assert.True(t, bp.Equal(decimal.NewFromInt(100)))
	})

	t.Run("no breakpoint past the maximum tier", func(t *testing.T) {
		_, ok := NextBreakpoint(MaxTier)
		assert.False(t, ok)
	})

	t.Run("breakpoints are contiguous with ResolveTier", func(t *testing.T) {
		for rank := MinTier; rank < MaxTier; rank++ {
			bp, ok := NextBreakpoint(rank)
			require.True(t, ok)
			// Just below the breakpoint stays in the current tier...
			assert.Equal(t, rank, ResolveTier(bp.Sub(decimal.NewFromFloat(0.01))))
			// ...and the breakpoint itself starts the next tier.
			assert.Equal(t, rank+1, ResolveTier(bp))
		}
	})
}
