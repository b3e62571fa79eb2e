package invoice

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Geometry is in points on an A4 portrait page (595.28 × 841.89).
const (
	marginX   = 15.0
	marginTop = 15.0
	pageW     = 565.0 // printable width
	rightX    = marginX + pageW
	rowH      = 20.0
	cellPad   = 2.0

	continuationBorderH = 810.0
)

type column struct {
	title string
	width float64
	align string
}

// Column boundaries are fixed; they must sum to pageW.
var columns = [...]column{
	{"S.No", 35, "C"},
	{"Code", 50, "C"},
	{"Product Name", 120, "L"},
	{"Quantity", 50, "C"},
	{"Rate", 50, "R"},
	{"Actual", 60, "R"},
	{"Disc %", 40, "C"},
	{"Discount", 60, "R"},
	{"Total", 100, "R"},
}

// columnX returns the left edge of column i.
func columnX(i int) float64 {
	x := marginX
	for _, c := range columns[:i] {
		x += c.width
	}
	return x
}

// splitX is the left edge of the Disc % column. Invoice metadata on the first
// page and the summary block on the last page both hang off it.
var splitX = columnX(6)

// Render lays out data and returns the PDF bytes. Identical input always
// yields identical bytes: the only timestamp embedded is data.GeneratedAt.
func Render(data Data, f Format) ([]byte, error) {
	pdf, _, err := build(data, f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice: output: %w", err)
	}
	return buf.Bytes(), nil
}

// build draws every page and returns the unserialised document together with
// the layout it followed.
func build(data Data, f Format) (*fpdf.Fpdf, Layout, error) {
	f = f.withDefaults()
	layout := Paginate(ResolveItems(data.Items), f.ItemsPerPage)

	stamp := data.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	store := resolveStore(data.Store)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(cellPad)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Invoice "+data.InvoiceNumber, true)
	pdf.SetAuthor(store.Name, true)
	pdf.SetSubject("Invoice", true)

	r := &renderer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		data:   data,
		store:  store,
		format: f,
		layout: layout,
		date:   stamp.In(f.Location).Format(f.DateLayout),
	}
	for _, p := range layout.Pages {
		r.page(p)
	}
	if pdf.Err() {
		return nil, layout, fmt.Errorf("invoice: %w", pdf.Error())
	}
	return pdf, layout, nil
}

func resolveStore(s Store) Store {
	s.Name = strings.ToUpper(strings.TrimSpace(s.Name))
	if s.Name == "" {
		s.Name = "INVOICE"
	}
	return s
}

type renderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	data   Data
	store  Store
	format Format
	layout Layout
	date   string
	y      float64
}

// page runs the per-page states: header, table header, rows, then the
// footer on the last page only.
func (r *renderer) page(p Page) {
	r.pdf.AddPage()
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetTextColor(0, 0, 0)

	if p.Index == 0 {
		r.firstPageHeader()
	} else {
		r.continuationHeader(p.Index)
	}
	r.tableHeader()
	for _, row := range p.Rows {
		r.itemRow(row)
	}
	for i := 0; i < p.BlankRows; i++ {
		r.gridRow(nil, nil)
	}

	bottom := marginTop + continuationBorderH
	if p.Last {
		bottom = r.footer()
	}
	r.pdf.Rect(marginX, marginTop, pageW, bottom-marginTop, "D")
}

// ── Headers ──────────────────────────────────────────────────────────────────

func (r *renderer) firstPageHeader() {
	pdf := r.pdf
	inner := pageW - 20
	y := 25.0

	pdf.SetFont("Helvetica", "B", 18)
	r.text(marginX+10, y, inner, 20, r.store.Name, "C")
	y += 25
	if r.store.Website != "" {
		pdf.SetFont("Helvetica", "", 12)
		r.text(marginX+10, y, inner, 14, r.store.Website, "C")
	}
	y += 20

	// contact row
	pdf.Line(marginX, y, rightX, y)
	half := (pageW - 30) / 2
	pdf.SetFont("Helvetica", "B", 11)
	if r.store.WhatsApp != "" {
		r.text(marginX+15, y+3, half, 14, "WhatsApp: "+r.store.WhatsApp, "L")
	}
	if r.store.Email != "" {
		r.text(marginX+15+half, y+3, half, 14, "Email: "+r.store.Email, "R")
	}
	y += 20
	pdf.Line(marginX, y, rightX, y)
	top := y

	// customer block on the left, invoice metadata on the right
	name, address, contact := customerLines(r.data.Customer)
	dividerX := marginX + pageW*0.6
	labelX := marginX + 10
	valueX := labelX + 50
	valueW := dividerX - valueX - cellPad
	for i, line := range [][2]string{{"Name :", name}, {"Address :", address}, {"Contact :", contact}} {
		ly := y + 5 + float64(i)*15
		pdf.SetFont("Helvetica", "", 11)
		r.text(labelX, ly, 50, 12, line[0], "L")
		pdf.SetFont("Helvetica", "B", 11)
		r.text(valueX, ly, valueW, 12, line[1], "L")
	}

	invX := splitX + 8
	invValX := invX + 60
	for i, line := range [][2]string{{"Invoice No :", r.data.InvoiceNumber}, {"Date :", r.date}} {
		ly := y + 5 + float64(i)*15
		pdf.SetFont("Helvetica", "", 11)
		r.text(invX, ly, 60, 12, line[0], "L")
		pdf.SetFont("Helvetica", "B", 11)
		r.text(invValX, ly, rightX-invValX-cellPad, 12, line[1], "L")
	}

	y += 50
	pdf.Line(dividerX, top, dividerX, y)
	pdf.Line(marginX, y, rightX, y)
	r.y = y
}

func (r *renderer) continuationHeader(index int) {
	y := 25.0
	r.pdf.SetFont("Helvetica", "B", 16)
	r.text(marginX+10, y, pageW-20, 20, r.store.Name, "C")
	y += 25
	r.pdf.SetFont("Helvetica", "I", 10)
	caption := fmt.Sprintf("Invoice %s - Page %d of %d", r.data.InvoiceNumber, index+1, r.layout.PageCount())
	r.text(marginX+10, y, pageW-20, 12, caption, "C")
	r.y = y + 30
}

// ── Table ────────────────────────────────────────────────────────────────────

func (r *renderer) tableHeader() {
	r.pdf.SetFillColor(232, 232, 232)
	r.pdf.Rect(marginX, r.y, pageW, rowH, "FD")
	r.pdf.SetFont("Helvetica", "B", 10)

	x := marginX
	for i, c := range columns {
		r.text(x, r.y, c.width, rowH, c.title, "C")
		x += c.width
		if i < len(columns)-1 {
			r.pdf.Line(x, r.y, x, r.y+rowH)
		}
	}
	r.y += rowH
}

func (r *renderer) itemRow(row Row) {
	r.pdf.SetFont("Helvetica", "", 9)
	r.gridRow([]string{
		strconv.Itoa(row.SNo),
		row.Code,
		row.Name,
		strconv.Itoa(row.Quantity),
		money(row.Rate),
		money(row.Actual),
		row.DiscountPct.String() + "%",
		money(row.Discount),
		money(row.Total),
	}, nil)
}

// gridRow draws one bordered row. nil cells give a blank row; aligns, when
// set, overrides the column alignment per cell.
func (r *renderer) gridRow(cells, aligns []string) {
	y := r.y
	r.pdf.Line(marginX, y+rowH, rightX, y+rowH)
	x := marginX
	for i, c := range columns {
		if cells != nil && cells[i] != "" {
			align := c.align
			if aligns != nil && aligns[i] != "" {
				align = aligns[i]
			}
			r.text(x, y, c.width, rowH, cells[i], align)
		}
		x += c.width
		if i < len(columns)-1 {
			r.pdf.Line(x, y, x, y+rowH)
		}
	}
	r.y += rowH
}

// ── Footer ───────────────────────────────────────────────────────────────────

// footer draws the totals row and summary block and returns the y of the
// closing border line.
func (r *renderer) footer() float64 {
	pdf := r.pdf
	t := r.layout.Totals

	pdf.SetFillColor(232, 232, 232)
	pdf.Rect(marginX, r.y, pageW, rowH, "FD")
	pdf.SetFont("Helvetica", "B", 10)
	r.gridRow(
		[]string{"", "", "TOTAL:", strconv.Itoa(t.Quantity), "", money(t.Actual), "", money(t.Discount), money(t.Amount)},
		[]string{"", "", "R", "C", "", "R", "", "R", "R"},
	)

	y := r.y
	foot := ResolveFooter(r.data.Summary, t)

	// amount in words, left of the split
	wordsW := splitX - marginX - 16
	pdf.SetFont("Helvetica", "B", 10)
	r.text(marginX+8, y+5, wordsW, 12, "Amount in Words:", "L")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginX+8, y+25)
	pdf.MultiCell(wordsW, 11, r.tr(AmountInWords(foot.FinalAmount)), "", "L", false)

	// summary block, right of the split
	sx := splitX + 8
	labelW := 75.0
	vx := sx + labelW
	valueW := rightX - vx - cellPad
	sy := y + 5
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Actual Total :", foot.ActualTotal},
		{"Discount Total :", foot.DiscountTotal},
		{"Sub Total :", foot.SubTotal},
		{"Packaging :", foot.Packaging},
	} {
		r.text(sx, sy, labelW, 12, line.label, "L")
		r.text(vx, sy, valueW, 12, r.format.CurrencyPrefix+money(line.value), "L")
		sy += rowH
	}

	sy += 2
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(sx, sy, vx+80, sy)
	pdf.SetDrawColor(0, 0, 0)
	sy += 3

	pdf.SetFont("Helvetica", "B", 10)
	r.text(sx, sy, labelW, 12, "Final Amount :", "L")
	r.text(vx, sy, valueW, 12, r.format.CurrencyPrefix+money(foot.FinalAmount), "L")
	sy += rowH

	pdf.Line(splitX, y, splitX, sy)
	pdf.Line(marginX, sy, rightX, sy)

	// closing lines sit outside the border
	ty := sy + 6
	pdf.SetFont("Helvetica", "B", 9)
	r.text(marginX, ty, pageW, 11, "Thank you for business with us!", "C")
	if r.store.Address != "" {
		pdf.SetFont("Helvetica", "", 8)
		r.text(marginX, ty+12, pageW, 10, "Address: "+r.store.Address, "C")
	}
	return sy
}

// ── Text helpers ─────────────────────────────────────────────────────────────

// text writes s into a w-wide cell at (x, y), clipped to the cell.
func (r *renderer) text(x, y, w, h float64, s, align string) {
	r.pdf.SetXY(x, y)
	r.pdf.CellFormat(w, h, r.fit(s, w), "", 0, align, false, 0, "")
}

// fit translates s to the core-font code page and trims it with a ".."
// marker until it fits inside w.
func (r *renderer) fit(s string, w float64) string {
	s = r.tr(s)
	room := w - 2*cellPad
	if r.pdf.GetStringWidth(s) <= room {
		return s
	}
	for len(s) > 0 && r.pdf.GetStringWidth(s+"..") > room {
		s = s[:len(s)-1]
	}
	return s + ".."
}

func money(v decimal.Decimal) string { return v.StringFixed(2) }
