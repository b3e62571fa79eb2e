package invoice

import (
	"strings"

	"github.com/srikumaragency/b-admin-prod-03/internal/numwords"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Footer holds the figures printed in the summary block of the last page.
type Footer struct {
	ActualTotal   decimal.Decimal
	DiscountTotal decimal.Decimal
	SubTotal      decimal.Decimal
	Packaging     decimal.Decimal
	FinalAmount   decimal.Decimal
}

// ResolveFooter prefers each figure from the caller's summary and falls back
// to the row sums field by field. The two sources are not reconciled: a
// summary that disagrees with its rows is printed as given.
func ResolveFooter(s *Summary, t Totals) Footer {
	var sum Summary
	if s != nil {
		sum = *s
	}
	actual := orElse(sum.TotalPrice, t.Actual)
	discount := orElse(sum.TotalSavings, t.Discount)
	sub := orElse(sum.TotalOfferPrice, actual.Sub(discount))
	packaging := sum.PackagingPrice
	final := orElse(sum.TotalWithPackaging, sub.Add(packaging))
	return Footer{
		ActualTotal:   actual,
		DiscountTotal: discount,
		SubTotal:      sub,
		Packaging:     packaging,
		FinalAmount:   final,
	}
}

func orElse(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return fallback
	}
	return v
}

// AmountInWords renders the floored amount as "Rupees One Hundred Only".
func AmountInWords(amount decimal.Decimal) string {
	whole := amount.Floor().IntPart()
	if whole < 0 {
		whole = 0
	}
	words := numwords.MustConvert(whole)
	// Casers keep state, so each call gets its own.
	title := cases.Title(language.English).String(words)
	return strings.Join([]string{"Rupees", title, "Only"}, " ")
}
