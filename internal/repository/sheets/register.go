package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// RegisterRange is the tab holding one row per issued purchase order.
const RegisterRange = "PurchaseOrders!A:I"

// PurchaseOrderRegister mirrors issued purchase orders into a spreadsheet.
type PurchaseOrderRegister struct {
	sheet Sheet
}

// NewPurchaseOrderRegister wraps a sheet.
func NewPurchaseOrderRegister(sheet Sheet) *PurchaseOrderRegister {
	return &PurchaseOrderRegister{sheet: sheet}
}

// AppendPurchaseOrder writes one register row. A PO number already in the
// register is not written again.
func (r *PurchaseOrderRegister) AppendPurchaseOrder(ctx context.Context, po models.PurchaseOrder, vendorName string) error {
	numbers, err := r.registeredNumbers(ctx)
	if err != nil {
		return fmt.Errorf("register purchase order %s: %w", po.PONumber, err)
	}
	for _, n := range numbers {
		if n == po.PONumber {
			return nil
		}
	}

	if err := r.sheet.AppendRow(ctx, RegisterRange, registerRow(po, vendorName)); err != nil {
		return fmt.Errorf("register purchase order %s: %w", po.PONumber, err)
	}
	return nil
}

// registeredNumbers returns the PO numbers already in the register, skipping the header row.
func (r *PurchaseOrderRegister) registeredNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.sheet.ReadRows(ctx, RegisterRange)
	if err != nil {
		return nil, err
	}

	var out []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		number := fmt.Sprint(row[0])
		if i == 0 && number == "PO Number" {
			continue
		}
		out = append(out, number)
	}
	return out, nil
}

func registerRow(po models.PurchaseOrder, vendorName string) []interface{} {
	return []interface{}{
		po.PONumber,
		po.IssuedAt.Format(time.RFC3339),
		po.IndentID,
		po.VendorID,
		vendorName,
		po.Description,
		po.Quantity,
		po.UnitPrice.String(),
		po.Total.String(),
	}
}
