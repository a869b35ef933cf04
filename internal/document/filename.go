package document

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day/month/year form printed on documents.
const DateLayout = "2/1/2006"

// FormatDate renders t as d/m/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// EnquiryFilename names the enquiry letter download.
func EnquiryFilename(org, indentID string, date time.Time) string {
	return fmt.Sprintf("%s_Enquiry_%s_%s.pdf", orgSlug(org), indentID, fileDate(date))
}

// PurchaseOrderFilename names the purchase order download.
func PurchaseOrderFilename(org, poNumber string, date time.Time) string {
	return fmt.Sprintf("%s_PurchaseOrder_%s_%s.pdf", orgSlug(org), poNumber, fileDate(date))
}

func fileDate(t time.Time) string {
	return strings.ReplaceAll(FormatDate(t), "/", "-")
}

func orgSlug(org string) string {
	org = strings.TrimSpace(org)
	if org == "" {
		org = "University"
	}
	org = strings.NewReplacer(" ", "_", "/", "-", `\`, "-").Replace(org)
	return sanitize(org)
}
