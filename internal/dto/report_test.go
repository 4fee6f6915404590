package dto

import (
	"testing"
	"time"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertEntityBreakdownRowRoundsToTwoPlaces(t *testing.T) {
	r := entity.OptionBreakdownRow{
		OptionId:     11,
		ProductName:  "Wool Socks",
		OptionName:   "Black / L",
		TotalSales:   decimal.RequireFromString("5000.005"),
		MarginRate:   decimal.RequireFromString("33.333333"),
		Roas:         decimal.RequireFromString("666.666666"),
		LastSaleDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	got := ConvertEntityBreakdownRow(r)
	assert.Equal(t, "5000.01", got.TotalSales.String())
	assert.Equal(t, "33.33", got.MarginRate.String())
	assert.Equal(t, "666.67", got.Roas.String())
	assert.Equal(t, "2024-03-01", got.LastSaleDate)
}

func TestConvertRecordUpsertValidation(t *testing.T) {
	_, err := ConvertRecordUpsertToEntity(1, RecordUpsert{
		OptionId: 11, ProductName: "Wool Socks", SaleDate: "03/01/2024",
	})
	require.Error(t, err)

	_, err = ConvertRecordUpsertToEntity(1, RecordUpsert{
		OptionId: 0, ProductName: "Wool Socks", SaleDate: "2024-03-01",
	})
	require.Error(t, err)

	rec, err := ConvertRecordUpsertToEntity(7, RecordUpsert{
		OptionId:    11,
		ProductName: "Wool Socks",
		OptionName:  "Black / L",
		SaleDate:    "2024-03-01",
		SalesAmount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, rec.TenantId)
	assert.Equal(t, "2024-03-01", rec.SaleDate.Format(dayLayout))
}

func TestConvertRecordUpsertsReportsRowIndex(t *testing.T) {
	_, err := ConvertRecordUpsertsToEntity(1, []RecordUpsert{
		{OptionId: 11, ProductName: "Wool Socks", SaleDate: "2024-03-01"},
		{OptionId: 12, ProductName: "Linen Shirt", SaleDate: "bad"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestConvertAdjustmentUpsertValidation(t *testing.T) {
	_, err := ConvertAdjustmentUpsertToEntity(1, AdjustmentUpsert{
		OptionId: 11, SaleDate: "2024-03-01", Quantity: -1,
	})
	require.Error(t, err)

	adj, err := ConvertAdjustmentUpsertToEntity(1, AdjustmentUpsert{
		OptionId: 11, SaleDate: "2024-03-01", Quantity: 3, UnitPrice: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, adj.Quantity)
}
