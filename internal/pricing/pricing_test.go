package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCompute_DefaultExample(t *testing.T) {
	res, err := ComputeWithDefaults(d("100"), nil, nil)
	require.NoError(t, err)

	assert.True(t, res.ProfitMarginPrice.Equal(d("165")), "got %s", res.ProfitMarginPrice)
	assert.True(t, res.OfferPrice.Equal(res.ProfitMarginPrice))
	assert.Equal(t, "868.42", res.CalculatedOriginalPrice.StringFixed(2))
	assert.True(t, res.ProfitMarginPercentage.Equal(DefaultProfitMargin))
	assert.True(t, res.DiscountPercentage.Equal(DefaultDiscount))
}

func TestCompute_OfferNeverAboveOriginal(t *testing.T) {
	bases := []string{"0.01", "1", "99.99", "100", "12345.67"}
	margins := []string{"0", "10", "65", "250", "1000"}
	discounts := []string{"0", "0.5", "50", "81", "99.99"}

	for _, b := range bases {
		for _, m := range margins {
			for _, disc := range discounts {
				res, err := Compute(d(b), d(m), d(disc))
				require.NoError(t, err)

				want := d(b).Mul(decimal.NewFromInt(1).Add(d(m).Div(decimal.NewFromInt(100))))
				assert.True(t, res.OfferPrice.Equal(want), "offer for base=%s margin=%s", b, m)
				assert.True(t, res.OfferPrice.LessThanOrEqual(res.CalculatedOriginalPrice),
					"offer %s > original %s (base=%s margin=%s discount=%s)",
					res.OfferPrice, res.CalculatedOriginalPrice, b, m, disc)
			}
		}
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	cases := []struct {
		name                   string
		base, margin, discount string
	}{
		{"zero base", "0", "65", "81"},
		{"negative base", "-5", "65", "81"},
		{"discount 100", "100", "65", "100"},
		{"discount above 100", "100", "65", "120"},
		{"negative discount", "100", "65", "-1"},
		{"negative margin", "100", "-1", "81"},
		{"margin above 1000", "100", "1000.01", "81"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(d(tc.base), d(tc.margin), d(tc.discount))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComputeWithDefaults_ExplicitOverrides(t *testing.T) {
	res, err := ComputeWithDefaults(d("200"), dp("50"), dp("0"))
	require.NoError(t, err)
	assert.True(t, res.OfferPrice.Equal(d("300")))
	assert.True(t, res.CalculatedOriginalPrice.Equal(d("300")))
}

func standardTiers() []Tier {
	return []Tier{
		{MinAmount: d("0"), MaxAmount: dp("5000"), Cost: d("100")},
		{MinAmount: d("5000"), MaxAmount: dp("10000"), Cost: d("200")},
		{MinAmount: d("10000"), MaxAmount: dp("20000"), Cost: d("300")},
		{MinAmount: d("20000"), MaxAmount: nil, Cost: d("500")},
	}
}

func TestPackagingCost_TierBoundaries(t *testing.T) {
	settings := PackagingSettings{IsActive: true, Tiers: standardTiers()}

	cases := map[string]string{
		"0":        "100",
		"4999.99":  "100",
		"5000":     "200",
		"9999.99":  "200",
		"10000":    "300",
		"20000":    "500",
		"25000":    "500",
		"99999999": "500",
	}
	for value, want := range cases {
		got := PackagingCost(d(value), settings)
		assert.True(t, got.Equal(d(want)), "value %s: got %s want %s", value, got, want)
	}
}

func TestPackagingCost_InactiveIsZero(t *testing.T) {
	settings := PackagingSettings{IsActive: false, Tiers: standardTiers()}
	for _, v := range []string{"0", "4999.99", "25000"} {
		assert.True(t, PackagingCost(d(v), settings).IsZero())
	}
}

func TestPackagingCost_EmptyTiersIsZero(t *testing.T) {
	assert.True(t, PackagingCost(d("1000"), PackagingSettings{IsActive: true}).IsZero())
}

func TestPackagingCost_UnsortedInputIsResorted(t *testing.T) {
	tiers := standardTiers()
	reversed := []Tier{tiers[3], tiers[2], tiers[1], tiers[0]}
	settings := PackagingSettings{IsActive: true, Tiers: reversed}

	assert.True(t, PackagingCost(d("4999.99"), settings).Equal(d("100")))
	assert.True(t, PackagingCost(d("25000"), settings).Equal(d("500")))
	// caller's slice keeps its order
	assert.True(t, reversed[0].Cost.Equal(d("500")))
}

func TestPackagingCost_BelowLowestTierIsZero(t *testing.T) {
	settings := PackagingSettings{IsActive: true, Tiers: []Tier{
		{MinAmount: d("1000"), MaxAmount: nil, Cost: d("50")},
	}}
	assert.True(t, PackagingCost(d("999.99"), settings).IsZero())
}

func TestPackagingCost_OverlapFirstMatchWins(t *testing.T) {
	settings := PackagingSettings{IsActive: true, Tiers: []Tier{
		{MinAmount: d("1000"), MaxAmount: nil, Cost: d("70")},
		{MinAmount: d("0"), MaxAmount: dp("5000"), Cost: d("40")},
	}}
	assert.True(t, PackagingCost(d("2000"), settings).Equal(d("40")))
}

func TestValidateTiers(t *testing.T) {
	t.Run("sorted on success", func(t *testing.T) {
		tiers := standardTiers()
		sorted, err := ValidateTiers([]Tier{tiers[2], tiers[0], tiers[3], tiers[1]})
		require.NoError(t, err)
		require.Len(t, sorted, 4)
		for i := range sorted {
			assert.True(t, sorted[i].MinAmount.Equal(tiers[i].MinAmount))
		}
	})

	t.Run("touching bounds allowed", func(t *testing.T) {
		_, err := ValidateTiers(standardTiers())
		assert.NoError(t, err)
	})

	bad := map[string][]Tier{
		"negative min":   {{MinAmount: d("-1"), Cost: d("1")}},
		"max not above":  {{MinAmount: d("10"), MaxAmount: dp("10"), Cost: d("1")}},
		"negative cost":  {{MinAmount: d("0"), Cost: d("-1")}},
		"overlap":        {{MinAmount: d("0"), MaxAmount: dp("6000"), Cost: d("1")}, {MinAmount: d("5000"), Cost: d("2")}},
		"unbounded then": {{MinAmount: d("0"), Cost: d("1")}, {MinAmount: d("0.5"), MaxAmount: dp("1"), Cost: d("2")}},
	}
	for name, tiers := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateTiers(tiers)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTotalAvailableQuantity(t *testing.T) {
	assert.Equal(t, 500, TotalAvailableQuantity(5, "qty:100 box"))
	assert.Equal(t, 24, TotalAvailableQuantity(2, "12 pcs / 3 packs"))
	assert.Equal(t, 0, TotalAvailableQuantity(0, "qty:100"))
	assert.Equal(t, 0, TotalAvailableQuantity(3, ""))
	assert.Equal(t, 0, TotalAvailableQuantity(3, "loose"))
}
