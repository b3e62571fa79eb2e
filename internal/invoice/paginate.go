package invoice

import "github.com/shopspring/decimal"

// Position places one item on the page grid.
type Position struct {
	PageIndex       int
	RowOnPage       int
	IsLastRowOfPage bool
}

// Locate is the page-break policy: item i lands on page i/perPage, row
// i%perPage, and a page is full after row perPage-1.
func Locate(itemIndex, itemsPerPage int) Position {
	return Position{
		PageIndex:       itemIndex / itemsPerPage,
		RowOnPage:       itemIndex % itemsPerPage,
		IsLastRowOfPage: itemIndex%itemsPerPage == itemsPerPage-1,
	}
}

// PageCount is 1 up to and including itemsPerPage items, ceil(n/perPage)
// beyond that.
func PageCount(items, itemsPerPage int) int {
	if items <= itemsPerPage {
		return 1
	}
	return (items + itemsPerPage - 1) / itemsPerPage
}

// Totals are the running sums kept while rows are emitted.
type Totals struct {
	Quantity int
	Actual   decimal.Decimal
	Discount decimal.Decimal
	Amount   decimal.Decimal
}

func (t Totals) add(r Row) Totals {
	return Totals{
		Quantity: t.Quantity + r.Quantity,
		Actual:   t.Actual.Add(r.Actual),
		Discount: t.Discount.Add(r.Discount),
		Amount:   t.Amount.Add(r.Total),
	}
}

// Page is one physical page of the table. BlankRows is the number of empty
// bordered rows drawn after the items; only the last page carries a footer.
type Page struct {
	Index     int
	Rows      []Row
	BlankRows int
	Last      bool
}

// Layout is the result of folding the rows through the page-break policy.
type Layout struct {
	Pages        []Page
	Totals       Totals
	ItemsPerPage int
}

func (l Layout) PageCount() int { return len(l.Pages) }

// foldStep consumes one row. It is the only place rows meet pages.
func foldStep(l Layout, r Row, index int) Layout {
	pos := Locate(index, l.ItemsPerPage)
	if pos.PageIndex == len(l.Pages) {
		l.Pages = append(l.Pages, Page{Index: pos.PageIndex})
	}
	p := &l.Pages[pos.PageIndex]
	p.Rows = append(p.Rows, r)
	l.Totals = l.Totals.add(r)
	return l
}

// Paginate folds rows into pages. An empty row list still yields one page
// so the document always has a table and a footer.
func Paginate(rows []Row, itemsPerPage int) Layout {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	l := Layout{ItemsPerPage: itemsPerPage}
	for i, r := range rows {
		l = foldStep(l, r, i)
	}
	if len(l.Pages) == 0 {
		l.Pages = append(l.Pages, Page{Index: 0})
	}

	last := &l.Pages[len(l.Pages)-1]
	last.Last = true
	// The totals row takes the final slot of the fixed-height table.
	if blank := itemsPerPage - 1 - len(last.Rows); blank > 0 {
		last.BlankRows = blank
	}
	return l
}
