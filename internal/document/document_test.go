package document

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(Settings{OrgName: "Anna University", CurrencySymbol: "Rs.", Locale: "en-IN"}, nil, opts...)
	require.NoError(t, err)
	return g
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Anna_University_Enquiry_IND001_4-3-2026.pdf", EnquiryFilename("Anna University", "IND001", issued))
	assert.Equal(t, "University_Enquiry_IND001_4-3-2026.pdf", EnquiryFilename("", "IND001", issued))

	po := "PO-IND001-1772638200000"
	assert.Equal(t, "Anna_University_PurchaseOrder_"+po+"_4-3-2026.pdf", PurchaseOrderFilename("Anna University", po, issued))

	// same inputs, same name
	assert.Equal(t, EnquiryFilename("Anna University", "IND002", issued), EnquiryFilename("Anna University", "IND002", issued))
	assert.NotEqual(t,
		PurchaseOrderFilename("U", "PO-IND001-1", issued),
		PurchaseOrderFilename("U", "PO-IND001-2", issued))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "4/3/2026", FormatDate(issued))
	assert.Equal(t, "25/12/2026", FormatDate(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestMoneyFormat(t *testing.T) {
	inr, err := NewMoneyFormatter("Rs.", "en-IN")
	require.NoError(t, err)
	assert.Equal(t, "Rs. 25,000", inr.Format(decimal.NewFromInt(25000)))

	usd, err := NewMoneyFormatter("$", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "$ 1,234,567.5", usd.Format(decimal.RequireFromString("1234567.5")))

	// fractions are printed exactly, never rounded
	assert.Equal(t, "Rs. 1,234.5678", inr.Format(decimal.RequireFromString("1234.5678")))
	assert.Equal(t, "Rs. 999.005", inr.Format(decimal.RequireFromString("999.005")))
	assert.Equal(t, "$ 123,456,789,012,345,678.25", usd.Format(decimal.RequireFromString("123456789012345678.25")))
	assert.Equal(t, "$ -1,500.75", usd.Format(decimal.RequireFromString("-1500.75")))

	_, err = NewMoneyFormatter("Rs.", "not a locale!")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Resume Rs. 5 - ok", sanitize("Résumé ₹ 5 — ok"))
	assert.Equal(t, "\"quoted\" 'x'", sanitize("“quoted” ‘x’"))
	assert.Equal(t, "a\nb", sanitize("a\r\nb"))
	assert.Equal(t, "??", sanitize("日本"))
}

func TestEnquiryLetterRequiresVendors(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.EnquiryLetter(EnquiryInput{IndentID: "IND001", Quantity: 2, Department: "Biology", Date: issued})
	assert.ErrorIs(t, err, ErrNoVendorsSelected)
	assert.Equal(t, "select at least one vendor", err.Error())
	assert.Empty(t, doc.Filename)
	assert.Empty(t, doc.Content)
}

func TestEnquiryLetterRenders(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.EnquiryLetter(EnquiryInput{
		EnquiryID:        "ENQ004",
		IndentID:         "IND001",
		Title:            "Compound Microscope",
		Department:       "Biology",
		Quantity:         2,
		Specification:    "Binocular head, 4x/10x/40x/100x objectives — LED illumination, 230 V ± 10%",
		Vendors:          []Addressee{{Name: "LabTech Supplies", Email: "vendor@labtech.example"}},
		DeliveryTimeline: "Within 3 weeks",
		Deadline:         issued.AddDate(0, 0, 10),
		RequestedBy:      "Anita Rao",
		Date:             issued,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna_University_Enquiry_IND001_4-3-2026.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	assert.Equal(t, 1, doc.Pages)
}

func TestLongSpecificationFlowsOntoNextPage(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.EnquiryLetter(EnquiryInput{
		IndentID:      "IND004",
		Specification: strings.Repeat("Laptop with 16 GB RAM and 512 GB SSD.\n", 80),
		Vendors:       []Addressee{{Name: "ComputeHub"}},
		Date:          issued,
	})
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 1)
}

func TestPurchaseOrderShowsGroupedTotal(t *testing.T) {
	g := newTestGenerator(t, WithoutCompression())

	doc, err := g.PurchaseOrder(PurchaseOrderInput{
		PONumber:     "PO-IND006-1772638200000",
		IndentID:     "IND006",
		Date:         issued,
		Vendor:       Supplier{Name: "Campus Furniture Works", Email: "sales@campusfurniture.example"},
		Description:  "Reading Room Chairs",
		Quantity:     10,
		UnitPrice:    decimal.NewFromInt(2500),
		Total:        decimal.NewFromInt(25000),
		DeliveryTime: "15 days",
		Warranty:     "1 year",
		ValidUntil:   issued.AddDate(0, 1, 0),
		Terms:        "50% advance, balance on delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna_University_PurchaseOrder_PO-IND006-1772638200000_4-3-2026.pdf", doc.Filename)
	assert.Contains(t, string(doc.Content), "(Rs. 25,000)")
	assert.Contains(t, string(doc.Content), "(Grand Total: Rs. 25,000)")
}

func TestWrappedLinesFitContentWidth(t *testing.T) {
	l := newLayout(true)
	spec := strings.Repeat("Stainless steel laboratory bench with reagent shelf, epoxy top and ", 12) +
		"\n\nSupercalifragilisticexpialidociouslylongtokenwithoutanyspacesthatmustbehardbrokenbythewrapper" +
		strings.Repeat("x", 150)

	lines := l.Wrap(spec, ContentWidth)
	require.NotEmpty(t, lines)
	assert.Equal(t, len(l.pdf.SplitText(sanitize(spec), ContentWidth)), len(lines))
	for _, line := range lines {
		assert.LessOrEqual(t, l.TextWidth(line), ContentWidth, line)
	}

	before := l.Y()
	l.Paragraph(spec)
	pages := l.Pages()
	if pages == 1 {
		assert.InDelta(t, before+float64(len(lines))*LineHeight, l.Y(), 0.001)
	}
}

func TestPageBreakKeepsCursorAboveBottomMargin(t *testing.T) {
	l := newLayout(true)
	for i := 0; i < 100; i++ {
		l.Line("line")
		assert.LessOrEqual(t, l.Y(), PageHeight-Margin)
	}
	// 42 lines fit between the margins at a 6 mm pitch.
	assert.Equal(t, 3, l.Pages())
}

func TestOrderTableAmountsFitTheirColumns(t *testing.T) {
	g := newTestGenerator(t)
	l := newLayout(true)
	l.Font("", 10)

	crore := g.Money().Format(decimal.RequireFromString("10000000"))
	require.Equal(t, "Rs. 1,00,00,000", crore)
	assert.LessOrEqual(t, l.TextWidth(crore), colTotal-colUnitPrice-2*cellPadding)

	total := g.Money().Format(decimal.RequireFromString("123456789.50"))
	assert.LessOrEqual(t, l.TextWidth(total), colEnd-colTotal-2*cellPadding, total)

	l.Font("B", 10)
	assert.LessOrEqual(t, l.TextWidth("Unit Price"), colTotal-colUnitPrice-2*cellPadding)
	assert.LessOrEqual(t, l.TextWidth("Qty"), colUnitPrice-colQuantity-2*cellPadding)
}
