package invoice

import "time"

// DefaultItemsPerPage is the page-break threshold.
const DefaultItemsPerPage = 25

// Format is the presentation configuration handed to every render call.
type Format struct {
	CurrencyPrefix string         // printed before summary amounts, e.g. "Rs. "
	DateLayout     string         // Go time layout for the invoice date
	Location       *time.Location // zone the invoice date is shown in
	ItemsPerPage   int
}

// ist is fixed rather than loaded so rendering never depends on tzdata.
var ist = time.FixedZone("IST", 5*60*60+30*60)

func DefaultFormat() Format {
	return Format{
		CurrencyPrefix: "Rs. ",
		DateLayout:     "02/01/2006",
		Location:       ist,
		ItemsPerPage:   DefaultItemsPerPage,
	}
}

// withDefaults fills zero fields so a partially built Format still renders.
func (f Format) withDefaults() Format {
	def := DefaultFormat()
	if f.DateLayout == "" {
		f.DateLayout = def.DateLayout
	}
	if f.Location == nil {
		f.Location = def.Location
	}
	if f.ItemsPerPage <= 0 {
		f.ItemsPerPage = def.ItemsPerPage
	}
	return f
}
