package dto

import (
	"fmt"
	"time"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// RecordUpsert is one integrated sales row as submitted by ingestion.
type RecordUpsert struct {
	OptionId      int             `json:"option_id"`
	ProductName   string          `json:"product_name"`
	OptionName    string          `json:"option_name"`
	SaleDate      string          `json:"sale_date"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	SalesQuantity int             `json:"sales_quantity"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	AdCost        decimal.Decimal `json:"ad_cost"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// AdjustmentUpsert is a fake purchase deduction row for one option and day.
type AdjustmentUpsert struct {
	OptionId  int             `json:"option_id"`
	SaleDate  string          `json:"sale_date"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func ConvertRecordUpsertToEntity(tenantId int, r RecordUpsert) (entity.IntegratedRecord, error) {
	d, err := time.Parse(dayLayout, r.SaleDate)
	if err != nil {
		return entity.IntegratedRecord{}, fmt.Errorf("invalid sale_date %q: %w", r.SaleDate, err)
	}
	if r.OptionId <= 0 {
		return entity.IntegratedRecord{}, fmt.Errorf("option_id must be positive")
	}
	if r.ProductName == "" {
		return entity.IntegratedRecord{}, fmt.Errorf("product_name is required")
	}
	return entity.IntegratedRecord{
		TenantId:      tenantId,
		OptionId:      r.OptionId,
		ProductName:   r.ProductName,
		OptionName:    r.OptionName,
		SaleDate:      d,
		SalesAmount:   r.SalesAmount,
		SalesQuantity: r.SalesQuantity,
		NetProfit:     r.NetProfit,
		TotalCost:     r.TotalCost,
		AdCost:        r.AdCost,
		UnitCost:      r.UnitCost,
	}, nil
}

func ConvertRecordUpsertsToEntity(tenantId int, rows []RecordUpsert) ([]entity.IntegratedRecord, error) {
	out := make([]entity.IntegratedRecord, 0, len(rows))
	for i, r := range rows {
		rec, err := ConvertRecordUpsertToEntity(tenantId, r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func ConvertAdjustmentUpsertToEntity(tenantId int, a AdjustmentUpsert) (entity.FakePurchaseAdjustment, error) {
	d, err := time.Parse(dayLayout, a.SaleDate)
	if err != nil {
		return entity.FakePurchaseAdjustment{}, fmt.Errorf("invalid sale_date %q: %w", a.SaleDate, err)
	}
	if a.OptionId <= 0 {
		return entity.FakePurchaseAdjustment{}, fmt.Errorf("option_id must be positive")
	}
	if a.Quantity < 0 {
		return entity.FakePurchaseAdjustment{}, fmt.Errorf("quantity must not be negative")
	}
	return entity.FakePurchaseAdjustment{
		TenantId:  tenantId,
		OptionId:  a.OptionId,
		SaleDate:  d,
		Quantity:  a.Quantity,
		UnitPrice: a.UnitPrice,
	}, nil
}
