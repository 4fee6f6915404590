package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/marginboard/marginboard-manager/internal/dependency"
	"github.com/marginboard/marginboard-manager/internal/entity"
)

var (
	// ErrInvalidDateRange is returned when a filter's start date falls
	// after its end date. Dates are never swapped or clamped silently.
	ErrInvalidDateRange = errors.New("start date is after end date")
	// ErrMissingTenant is returned when the filter has no tenant id.
	ErrMissingTenant = errors.New("tenant id is required")
	// ErrMissingProductName is returned by ProductTrend without a product.
	ErrMissingProductName = errors.New("product name is required")
)

// Service fetches an immutable snapshot from the store and hands it to the
// pure engine. Each call reads the store exactly once up front, so results
// are insensitive to writes landing mid-computation.
type Service struct {
	rep dependency.Repository
	eng *Engine
}

func New(rep dependency.Repository, eng *Engine) *Service {
	if eng == nil {
		eng = NewEngine()
	}
	return &Service{rep: rep, eng: eng}
}

func validateFilter(f entity.ReportFilter) error {
	if f.TenantId <= 0 {
		return ErrMissingTenant
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// snapshot fetches records and adjustments once, before any computation.
func (s *Service) snapshot(ctx context.Context, f entity.ReportFilter) ([]entity.IntegratedRecord, []entity.FakePurchaseAdjustment, error) {
	records, err := s.rep.Records().GetIntegratedRecords(ctx, f.TenantId, f.From, f.To, f.ProductName)
	if err != nil {
		return nil, nil, fmt.Errorf("get integrated records: %w", err)
	}
	adjustments, err := s.rep.Adjustments().GetAdjustments(ctx, f.TenantId, f.From, f.To)
	if err != nil {
		return nil, nil, fmt.Errorf("get adjustments: %w", err)
	}
	return records, adjustments, nil
}

func (s *Service) DailyTrend(ctx context.Context, f entity.ReportFilter) ([]entity.DailyTrendRow, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	records, adjustments, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.eng.DailyTrend(records, adjustments, f), nil
}

func (s *Service) Breakdown(ctx context.Context, f entity.ReportFilter, rollupByProduct bool) ([]entity.OptionBreakdownRow, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	records, adjustments, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.eng.Breakdown(records, adjustments, f, rollupByProduct), nil
}

func (s *Service) PeriodSummary(ctx context.Context, f entity.ReportFilter) (entity.PeriodSummary, error) {
	if err := validateFilter(f); err != nil {
		return entity.PeriodSummary{}, err
	}
	records, adjustments, err := s.snapshot(ctx, f)
	if err != nil {
		return entity.PeriodSummary{}, err
	}
	return s.eng.PeriodSummary(records, adjustments, f), nil
}

func (s *Service) ProductTrend(ctx context.Context, f entity.ReportFilter, productName string, optionId int) ([]entity.DailyTrendRow, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, ErrMissingProductName
	}
	// the substring filter narrows the fetch; the engine matches exactly
	fetch := f
	if fetch.ProductName == "" {
		fetch.ProductName = productName
	}
	records, adjustments, err := s.snapshot(ctx, fetch)
	if err != nil {
		return nil, err
	}
	return s.eng.ProductTrend(records, adjustments, f, productName, optionId), nil
}

func (s *Service) ROASBreakdown(ctx context.Context, f entity.ReportFilter) (entity.RoasBreakdown, error) {
	if err := validateFilter(f); err != nil {
		return entity.RoasBreakdown{}, err
	}
	records, adjustments, err := s.snapshot(ctx, f)
	if err != nil {
		return entity.RoasBreakdown{}, err
	}
	return s.eng.ROASBreakdown(records, adjustments, f), nil
}
