package invoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultDiscountPct matches the catalog default so a snapshot without a
// discount prints the same figure the product was sold at.
var defaultDiscountPct = decimal.NewFromInt(81)

var hundred = decimal.NewFromInt(100)

// Row is a fully resolved table row; nothing in it is optional.
type Row struct {
	SNo         int
	Code        string
	Name        string
	Quantity    int
	Rate        decimal.Decimal
	Actual      decimal.Decimal
	DiscountPct decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// ResolveItems maps snapshots to rows, substituting deterministic
// placeholders for missing catalog metadata:
//
//	name     → "Product {i+1}"
//	code     → 100+i
//	quantity → 1 when below 1
//	discount → 81 when absent
func ResolveItems(items []LineItem) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = "Product " + strconv.Itoa(i+1)
		}
		code := strings.TrimSpace(it.ProductCode)
		if code == "" {
			code = strconv.Itoa(100 + i)
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		pct := defaultDiscountPct
		if it.DiscountPercentage != nil {
			pct = *it.DiscountPercentage
		}

		actual := it.UnitRate.Mul(decimal.NewFromInt(int64(qty)))
		discount := actual.Mul(pct).Div(hundred)
		rows[i] = Row{
			SNo:         i + 1,
			Code:        code,
			Name:        name,
			Quantity:    qty,
			Rate:        it.UnitRate,
			Actual:      actual,
			DiscountPct: pct,
			Discount:    discount,
			Total:       actual.Sub(discount),
		}
	}
	return rows
}

// customerLines returns the name, address and contact strings for the
// customer block, each falling back to a label when empty.
func customerLines(c Customer) (name, address, contact string) {
	name = strings.TrimSpace(c.Name)
	if name == "" {
		name = "Customer Name"
	}

	a := c.Address
	var parts []string
	for _, p := range []string{a.Street, a.Landmark, a.NearestTown, a.District, a.State, a.Pincode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if a.Country != "" && !strings.EqualFold(a.Country, "India") {
		parts = append(parts, a.Country)
	}
	address = strings.Join(parts, ", ")
	if address == "" {
		address = "Customer Address"
	}

	mobile, delivery := strings.TrimSpace(c.Mobile), strings.TrimSpace(c.DeliveryContact)
	switch {
	case mobile != "" && delivery != "" && mobile != delivery:
		contact = mobile + ", " + delivery
	case mobile != "":
		contact = mobile
	case delivery != "":
		contact = delivery
	default:
		contact = "Contact Number"
	}
	return name, address, contact
}
