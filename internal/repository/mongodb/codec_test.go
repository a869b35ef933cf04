package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

func TestDecimalStoredAsString(t *testing.T) {
	reg := newRegistry()
	in := models.Quote{ID: "Q1", DiscountedPrice: decimal.RequireFromString("24999.50")}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	price := bson.Raw(raw).Lookup("discounted_price")
	assert.Equal(t, "24999.5", price.StringValue())

	var out models.Quote
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.DiscountedPrice.Equal(out.DiscountedPrice))
}

func TestDecimalDecodesLegacyNumbers(t *testing.T) {
	reg := newRegistry()
	raw, err := bson.Marshal(bson.M{"_id": "Q2", "discounted_price": int64(1200), "original_price": 99.5})
	require.NoError(t, err)

	var out models.Quote
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.Equal(t, "1200", out.DiscountedPrice.String())
	assert.Equal(t, "99.5", out.OriginalPrice.String())
}

func TestSortQuotesCheapestFirst(t *testing.T) {
	quotes := []models.Quote{
		{ID: "B", DiscountedPrice: decimal.NewFromInt(10)},
		{ID: "A", DiscountedPrice: decimal.NewFromInt(10)},
		{ID: "C", DiscountedPrice: decimal.NewFromInt(5)},
	}
	sortQuotes(quotes)
	assert.Equal(t, []string{"C", "A", "B"}, []string{quotes[0].ID, quotes[1].ID, quotes[2].ID})
}
