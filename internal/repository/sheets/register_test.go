package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

type fakeSheet struct {
	rows    [][]interface{}
	ranges  []string
	failure error
}

func (f *fakeSheet) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	if f.failure != nil {
		return f.failure
	}
	f.ranges = append(f.ranges, sheetRange)
	f.rows = append(f.rows, values)
	return nil
}

func (f *fakeSheet) ReadRows(_ context.Context, _ string) ([][]interface{}, error) {
	return f.rows, f.failure
}

func TestAppendPurchaseOrder(t *testing.T) {
	sheet := &fakeSheet{rows: [][]interface{}{{"PO Number", "Issued At"}}}
	register := NewPurchaseOrderRegister(sheet)

	po := models.PurchaseOrder{
		PONumber:  "PO-IND001-1700000000000",
		IndentID:  "IND001",
		VendorID:  "V001",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(12500),
		Total:     decimal.NewFromInt(25000),
		IssuedAt:  time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, register.AppendPurchaseOrder(context.Background(), po, "LabTech Supplies"))

	require.Len(t, sheet.ranges, 1)
	assert.Equal(t, RegisterRange, sheet.ranges[0])
	row := sheet.rows[1]
	assert.Equal(t, "PO-IND001-1700000000000", row[0])
	assert.Equal(t, "LabTech Supplies", row[4])
	assert.Equal(t, "25000", row[8])

	numbers, err := register.registeredNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-IND001-1700000000000"}, numbers)
}

func TestAppendPurchaseOrderSkipsRegisteredNumber(t *testing.T) {
	sheet := &fakeSheet{rows: [][]interface{}{{"PO Number", "Issued At"}}}
	register := NewPurchaseOrderRegister(sheet)
	po := models.PurchaseOrder{PONumber: "PO-IND006-1772618400000", IndentID: "IND006", Total: decimal.NewFromInt(25000)}

	require.NoError(t, register.AppendPurchaseOrder(context.Background(), po, "Campus Furniture Works"))
	require.NoError(t, register.AppendPurchaseOrder(context.Background(), po, "Campus Furniture Works"))

	assert.Len(t, sheet.ranges, 1)
	assert.Len(t, sheet.rows, 2)
}

func TestAppendPurchaseOrderWrapsFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	register := NewPurchaseOrderRegister(&fakeSheet{failure: boom})

	err := register.AppendPurchaseOrder(context.Background(), models.PurchaseOrder{PONumber: "PO-X"}, "")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "PO-X")
}
