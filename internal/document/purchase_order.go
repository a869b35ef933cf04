package document

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Column boundaries of the order table, in millimetres from the page edge.
const (
	colDescription = 20.0
	colQuantity    = 100.0
	colUnitPrice   = 118.0
	colTotal       = 150.0
	colEnd         = 190.0

	cellPadding  = 2.0
	headerHeight = 8.0
)

// Supplier is the vendor block printed on a purchase order.
type Supplier struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Location      string
}

// PurchaseOrderInput is everything printed on a purchase order.
type PurchaseOrderInput struct {
	PONumber     string
	IndentID     string
	Date         time.Time
	Vendor       Supplier
	Description  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	DeliveryTime string
	Warranty     string
	ValidUntil   time.Time
	Terms        string
	IssuedBy     string
}

// PurchaseOrder renders the purchase order issued to the selected vendor.
func (g *Generator) PurchaseOrder(in PurchaseOrderInput) (Document, error) {
	filename := PurchaseOrderFilename(g.org, in.PONumber, in.Date)
	return g.render(filename, func(l *Layout) {
		g.letterhead(l, "Purchase Order", in.Date)

		l.Field("PO Number", in.PONumber)
		l.Field("Indent", in.IndentID)
		l.Gap(LineHeight / 2)

		l.Font("B", bodySize)
		l.Line("Supplier")
		l.Font("", bodySize)
		l.Line(in.Vendor.Name)
		if in.Vendor.ContactPerson != "" {
			l.Line("Attn: " + in.Vendor.ContactPerson)
		}
		if in.Vendor.Email != "" || in.Vendor.Phone != "" {
			l.Line(joinNonEmpty(" | ", in.Vendor.Email, in.Vendor.Phone))
		}
		if in.Vendor.Location != "" {
			l.Line(in.Vendor.Location)
		}
		l.Gap(LineHeight / 2)

		g.orderTable(l, in)
		l.Gap(LineHeight / 2)

		l.Font("B", 12)
		l.Line("Grand Total: " + g.money.Format(in.Total))
		l.Font("", bodySize)
		l.Gap(LineHeight / 2)

		l.Font("B", bodySize)
		l.Line("Terms")
		l.Font("", bodySize)
		l.Field("Delivery", in.DeliveryTime)
		if in.Warranty != "" {
			l.Field("Warranty", in.Warranty)
		}
		if !in.ValidUntil.IsZero() {
			l.Field("Quote valid until", FormatDate(in.ValidUntil))
		}
		if in.Terms != "" {
			l.Field("Payment", in.Terms)
		}
		l.Gap(2 * LineHeight)

		l.Reserve(2 * LineHeight)
		l.pdf.Line(Margin, l.y, Margin+60, l.y)
		l.pdf.Line(PageWidth-Margin-60, l.y, PageWidth-Margin, l.y)
		l.Gap(LineHeight / 2)
		l.pdf.Text(Margin, l.y, "Authorised Signatory")
		l.pdf.Text(PageWidth-Margin-60, l.y, "Supplier Acceptance")
		l.Gap(LineHeight)
		if in.IssuedBy != "" {
			l.Line("Issued by: " + in.IssuedBy)
		}
	})
}

func (g *Generator) orderTable(l *Layout, in PurchaseOrderInput) {
	dividers := []float64{colQuantity, colUnitPrice, colTotal}
	tableWidth := colEnd - colDescription

	l.Reserve(headerHeight + LineHeight + cellPadding)
	l.Font("B", 10)
	l.pdf.Rect(colDescription, l.y, tableWidth, headerHeight, "D")
	for _, x := range dividers {
		l.pdf.Line(x, l.y, x, l.y+headerHeight)
	}
	baseline := l.y + headerHeight - cellPadding - 0.5
	l.pdf.Text(colDescription+cellPadding, baseline, "Description")
	l.pdf.Text(colQuantity+cellPadding, baseline, "Qty")
	l.pdf.Text(colUnitPrice+cellPadding, baseline, "Unit Price")
	l.pdf.Text(colTotal+cellPadding, baseline, "Total")
	l.y += headerHeight

	l.Font("", 10)
	lines := l.Wrap(in.Description, colQuantity-colDescription-cellPadding)
	if len(lines) == 0 {
		lines = []string{""}
	}
	rowHeight := float64(len(lines))*LineHeight + cellPadding

	l.Reserve(rowHeight)
	l.pdf.Rect(colDescription, l.y, tableWidth, rowHeight, "D")
	for _, x := range dividers {
		l.pdf.Line(x, l.y, x, l.y+rowHeight)
	}
	first := l.y + LineHeight - 1
	for i, line := range lines {
		l.pdf.Text(colDescription+cellPadding, first+float64(i)*LineHeight, line)
	}
	l.pdf.Text(colQuantity+cellPadding, first, strconv.Itoa(in.Quantity))
	l.pdf.Text(colUnitPrice+cellPadding, first, sanitize(g.money.Format(in.UnitPrice)))
	l.pdf.Text(colTotal+cellPadding, first, sanitize(g.money.Format(in.Total)))
	l.y += rowHeight

	l.Font("", bodySize)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
