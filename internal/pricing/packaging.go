package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Tier is one packaging bracket. A nil MaxAmount marks the unbounded top tier.
type Tier struct {
	MinAmount decimal.Decimal  `json:"minAmount"`
	MaxAmount *decimal.Decimal `json:"maxAmount"`
	Cost      decimal.Decimal  `json:"cost"`
}

// Contains reports whether value falls in [MinAmount, MaxAmount).
func (t Tier) Contains(value decimal.Decimal) bool {
	if value.LessThan(t.MinAmount) {
		return false
	}
	return t.MaxAmount == nil || value.LessThan(*t.MaxAmount)
}

// PackagingSettings is the store-level packaging configuration.
type PackagingSettings struct {
	IsActive bool   `json:"isActive"`
	Tiers    []Tier `json:"tiers"`
}

// PackagingCost returns the surcharge for orderValue. Inactive settings, an
// empty table or a value matching no tier all yield zero. If tiers overlap
// the first match in ascending minAmount order wins.
func PackagingCost(orderValue decimal.Decimal, settings PackagingSettings) decimal.Decimal {
	if !settings.IsActive || len(settings.Tiers) == 0 {
		return decimal.Zero
	}
	for _, t := range SortTiers(settings.Tiers) {
		if t.Contains(orderValue) {
			return t.Cost
		}
	}
	return decimal.Zero
}

// SortTiers returns a copy of tiers ordered by MinAmount. The input slice is
// left untouched.
func SortTiers(tiers []Tier) []Tier {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinAmount.LessThan(sorted[j].MinAmount)
	})
	return sorted
}

// ValidateTiers checks each tier and the absence of overlaps, and returns
// the tiers sorted ascending for storage.
func ValidateTiers(tiers []Tier) ([]Tier, error) {
	for i, t := range tiers {
		if t.MinAmount.IsNegative() {
			return nil, fmt.Errorf("%w: tier %d: minAmount must be a non-negative number", ErrInvalidInput, i+1)
		}
		if t.MaxAmount != nil && t.MaxAmount.LessThanOrEqual(t.MinAmount) {
			return nil, fmt.Errorf("%w: tier %d: maxAmount must be null or greater than minAmount", ErrInvalidInput, i+1)
		}
		if t.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: tier %d: cost must be a non-negative number", ErrInvalidInput, i+1)
		}
	}

	sorted := SortTiers(tiers)
	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]
		// an unbounded tier can only be the last one
		if cur.MaxAmount == nil || cur.MaxAmount.GreaterThan(next.MinAmount) {
			return nil, fmt.Errorf("%w: packaging cost tiers cannot overlap", ErrInvalidInput)
		}
	}
	return sorted, nil
}
