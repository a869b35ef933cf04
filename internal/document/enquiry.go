package document

import (
	"strconv"
	"time"
)

// Addressee is one vendor an enquiry letter is sent to.
type Addressee struct {
	Name          string
	ContactPerson string
	Email         string
	Location      string
}

// EnquiryInput is everything printed on an enquiry letter.
type EnquiryInput struct {
	EnquiryID        string
	IndentID         string
	Title            string
	Department       string
	Quantity         int
	Specification    string
	VendorCategory   string
	Vendors          []Addressee
	DeliveryTimeline string
	Deadline         time.Time
	RequestedBy      string
	Date             time.Time
}

// EnquiryLetter renders the request-for-quotation letter.
func (g *Generator) EnquiryLetter(in EnquiryInput) (Document, error) {
	if len(in.Vendors) == 0 {
		return Document{}, ErrNoVendorsSelected
	}

	filename := EnquiryFilename(g.org, in.IndentID, in.Date)
	return g.render(filename, func(l *Layout) {
		g.letterhead(l, "Enquiry for Quotation", in.Date)

		if in.EnquiryID != "" {
			l.Line("Reference: " + in.EnquiryID + " / Indent " + in.IndentID)
		} else {
			l.Line("Reference: Indent " + in.IndentID)
		}
		l.Gap(LineHeight / 2)

		l.Line("To,")
		for _, v := range in.Vendors {
			l.Font("B", bodySize)
			l.LineAt(Margin+5, v.Name)
			l.Font("", bodySize)
			if v.ContactPerson != "" {
				l.LineAt(Margin+5, "Attn: "+v.ContactPerson)
			}
			if v.Email != "" {
				l.LineAt(Margin+5, v.Email)
			}
			if v.Location != "" {
				l.LineAt(Margin+5, v.Location)
			}
		}
		l.Gap(LineHeight / 2)

		l.Line("Dear Sir/Madam,")
		l.Paragraph("We invite your best quotation for the item described below, required by the " +
			in.Department + " department.")
		l.Gap(LineHeight / 2)

		l.Font("B", bodySize)
		l.Line("Item Details")
		l.Font("", bodySize)
		l.Field("Title", in.Title)
		l.Field("Department", in.Department)
		l.Field("Quantity", strconv.Itoa(in.Quantity))
		if in.VendorCategory != "" {
			l.Field("Category", in.VendorCategory)
		}
		l.Gap(LineHeight / 2)

		l.Font("B", bodySize)
		l.Line("Specification")
		l.Font("", bodySize)
		l.Paragraph(in.Specification)
		l.Gap(LineHeight / 2)

		l.Field("Delivery Timeline", in.DeliveryTimeline)
		l.Field("Last Date for Quotation", FormatDate(in.Deadline))
		if in.RequestedBy != "" {
			l.Field("Requested By", in.RequestedBy)
		}
		l.Gap(LineHeight)

		l.Paragraph("Please quote your original and discounted prices, delivery time, warranty and " +
			"payment terms, along with the validity period of your offer.")
		l.Gap(LineHeight)
		l.Line("Yours faithfully,")
		l.Gap(LineHeight)
		l.Line("Central Purchase Department")
		l.Line(g.orgName())
	})
}
