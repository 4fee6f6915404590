package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marginboard/marginboard-manager/internal/dependency"
	"github.com/marginboard/marginboard-manager/internal/entity"
)

const dayLayout = "2006-01-02"

type adjustmentsStore struct {
	*MYSQLStore
}

// Adjustments returns an object implementing Adjustments interface
func (ms *MYSQLStore) Adjustments() dependency.Adjustments {
	return &adjustmentsStore{
		MYSQLStore: ms,
	}
}

// GetAdjustments returns adjustments ordered by id, so a row written later
// for the same (option, day) key takes precedence downstream.
func (ms *MYSQLStore) GetAdjustments(ctx context.Context, tenantId int, from, to *time.Time) ([]entity.FakePurchaseAdjustment, error) {
	query := `
	SELECT id, tenant_id, option_id, sale_date, quantity, unit_price
	FROM fake_purchase_adjustment
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
	query += ` ORDER BY id`

	adjustments, err := QueryListNamed[entity.FakePurchaseAdjustment](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get adjustments: %w", err)
	}
	return adjustments, nil
}

func (ms *MYSQLStore) UpsertAdjustment(ctx context.Context, adj entity.FakePurchaseAdjustment) error {
	query := `
	INSERT INTO fake_purchase_adjustment
		(tenant_id, option_id, sale_date, quantity, unit_price)
	VALUES (:tenantId, :optionId, :saleDate, :quantity, :unitPrice)
	ON DUPLICATE KEY UPDATE
		quantity = VALUES(quantity),
		unit_price = VALUES(unit_price)`

	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"tenantId":  adj.TenantId,
		"optionId":  adj.OptionId,
		"saleDate":  adj.SaleDate.Format(dayLayout),
		"quantity":  adj.Quantity,
		"unitPrice": adj.UnitPrice,
	})
	if err != nil {
		return fmt.Errorf("can't upsert adjustment: %w", err)
	}
	return nil
}
