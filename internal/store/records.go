package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marginboard/marginboard-manager/internal/dependency"
	"github.com/marginboard/marginboard-manager/internal/entity"
)

type recordsStore struct {
	*MYSQLStore
}

// Records returns an object implementing Records interface
func (ms *MYSQLStore) Records() dependency.Records {
	return &recordsStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) GetIntegratedRecords(ctx context.Context, tenantId int, from, to *time.Time, productName string) ([]entity.IntegratedRecord, error) {
	query := `
	SELECT id, tenant_id, option_id, product_name, option_name, sale_date,
		sales_amount, sales_quantity, net_profit, total_cost, ad_cost, unit_cost
	FROM integrated_record
	WHERE tenant_id = :tenantId`
	params := map[string]any{
		"tenantId": tenantId,
	}

	if from != nil {
		query += ` AND sale_date >= :fromDate`
		params["fromDate"] = from.Format(dayLayout)
	}
	if to != nil {
		query += ` AND sale_date <= :toDate`
		params["toDate"] = to.Format(dayLayout)
	}
	if productName != "" {
		query += ` AND LOWER(product_name) LIKE LOWER(CONCAT('%', :productName, '%'))`
		params["productName"] = productName
	}
	query += ` ORDER BY sale_date, option_id`

	records, err := QueryListNamed[entity.IntegratedRecord](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get integrated records: %w", err)
	}
	return records, nil
}

func (ms *MYSQLStore) UpsertIntegratedRecords(ctx context.Context, records []entity.IntegratedRecord) error {
	if len(records) == 0 {
		return nil
	}

	columns := []string{
		"tenant_id", "option_id", "product_name", "option_name", "sale_date",
		"sales_amount", "sales_quantity", "net_profit", "total_cost", "ad_cost", "unit_cost",
	}
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]any{
			"tenant_id":      r.TenantId,
			"option_id":      r.OptionId,
			"product_name":   r.ProductName,
			"option_name":    r.OptionName,
			"sale_date":      r.SaleDate.Format(dayLayout),
			"sales_amount":   r.SalesAmount,
			"sales_quantity": r.SalesQuantity,
			"net_profit":     r.NetProfit,
			"total_cost":     r.TotalCost,
			"ad_cost":        r.AdCost,
			"unit_cost":      r.UnitCost,
		})
	}

	updateColumns := []string{
		"product_name", "option_name", "sales_amount", "sales_quantity",
		"net_profit", "total_cost", "ad_cost", "unit_cost",
	}
	err := BulkUpsert(ctx, ms.DB(), "integrated_record", columns, rows, updateColumns)
	if err != nil {
		return fmt.Errorf("can't upsert integrated records: %w", err)
	}
	return nil
}
