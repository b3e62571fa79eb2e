// Package invoice lays out and renders the customer invoice PDF.
//
// The engine is a pure transformation: Data in, document bytes out. It never
// touches storage or the network and keeps no state between calls, so
// concurrent renders need no coordination.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is the customer's delivery address as captured on the order.
type Address struct {
	Street      string `json:"street"`
	Landmark    string `json:"landmark"`
	NearestTown string `json:"nearestTown"`
	District    string `json:"district"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Country     string `json:"country"`
}

type Customer struct {
	Name            string  `json:"name"`
	Mobile          string  `json:"mobile"`
	DeliveryContact string  `json:"deliveryContact"`
	Address         Address `json:"address"`
}

// LineItem is the frozen order-time snapshot of one product. Empty Name or
// ProductCode and a nil DiscountPercentage are filled in by ResolveItems.
type LineItem struct {
	ProductCode        string           `json:"productCode"`
	Name               string           `json:"name"`
	Quantity           int              `json:"quantity"`
	UnitRate           decimal.Decimal  `json:"unitRate"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
}

// Summary carries the order totals computed when the order was placed. A
// zero field counts as absent and falls back to the row sums.
type Summary struct {
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	TotalSavings       decimal.Decimal `json:"totalSavings"`
	TotalOfferPrice    decimal.Decimal `json:"totalOfferPrice"`
	PackagingPrice     decimal.Decimal `json:"packagingPrice"`
	TotalWithPackaging decimal.Decimal `json:"totalWithPackaging"`
}

// Store is the letterhead printed on every page.
type Store struct {
	Name     string `json:"name"`
	Website  string `json:"website"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// Data is everything needed to render one invoice.
type Data struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	OrderID       string     `json:"orderId"`
	GeneratedAt   time.Time  `json:"generatedAt"`
	PaymentStatus string     `json:"paymentStatus"`
	Customer      Customer   `json:"customerDetails"`
	Items         []LineItem `json:"items"`
	Summary       *Summary   `json:"orderSummary,omitempty"`
	Store         Store      `json:"storeDetails"`
}
