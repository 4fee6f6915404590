package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/marginboard/marginboard-manager/internal/dependency"
	"github.com/marginboard/marginboard-manager/internal/dto"
	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/marginboard/marginboard-manager/internal/report"
)

const dayLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondServiceError maps validation sentinels to 400 and everything else
// to 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrMissingTenant),
		errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrMissingProductName):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Default().ErrorContext(r.Context(), "report request failed",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseReportFilter(r *http.Request) (entity.ReportFilter, error) {
	q := r.URL.Query()

	tenantId, err := strconv.Atoi(q.Get("tenant_id"))
	if err != nil {
		return entity.ReportFilter{}, errors.New("tenant_id must be an integer")
	}
	f := entity.NewReportFilter(tenantId)

	if v := q.Get("start_date"); v != "" {
		d, err := time.Parse(dayLayout, v)
		if err != nil {
			return entity.ReportFilter{}, errors.New("start_date must be YYYY-MM-DD")
		}
		f.From = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := time.Parse(dayLayout, v)
		if err != nil {
			return entity.ReportFilter{}, errors.New("end_date must be YYYY-MM-DD")
		}
		f.To = &d
	}
	f.ProductName = q.Get("product_name")

	if v := q.Get("include_fake_purchase_adjustment"); v != "" {
		apply, err := strconv.ParseBool(v)
		if err != nil {
			return entity.ReportFilter{}, errors.New("include_fake_purchase_adjustment must be a boolean")
		}
		f.ApplyAdjustments = apply
	}

	return f, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rep.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDailyTrend(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.svc.DailyTrend(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ConvertEntityDailyTrend(rows))
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rollup := r.URL.Query().Get("group_by") == "product"
	rows, err := s.svc.Breakdown(r.Context(), f, rollup)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ConvertEntityBreakdown(rows))
}

func (s *Server) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := s.svc.PeriodSummary(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ConvertEntityPeriodSummary(summary))
}

func (s *Server) handleProductTrend(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	optionId := 0
	if v := q.Get("option_id"); v != "" {
		optionId, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "option_id must be an integer")
			return
		}
	}
	rows, err := s.svc.ProductTrend(r.Context(), f, q.Get("product_name"), optionId)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ConvertEntityDailyTrend(rows))
}

func (s *Server) handleRoasBreakdown(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	breakdown, err := s.svc.ROASBreakdown(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.ConvertEntityRoasBreakdown(breakdown))
}

type upsertRecordsRequest struct {
	TenantId int                `json:"tenant_id"`
	Records  []dto.RecordUpsert `json:"records"`
}

type upsertRecordsResponse struct {
	BatchId string `json:"batch_id"`
	Count   int    `json:"count"`
}

func (s *Server) handleUpsertRecords(w http.ResponseWriter, r *http.Request) {
	var req upsertRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.TenantId <= 0 {
		respondError(w, http.StatusBadRequest, "tenant_id must be positive")
		return
	}
	if len(req.Records) == 0 {
		respondError(w, http.StatusBadRequest, "records must not be empty")
		return
	}

	records, err := dto.ConvertRecordUpsertsToEntity(req.TenantId, req.Records)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	batchId := uuid.New().String()
	err = s.rep.Tx(r.Context(), func(ctx context.Context, rep dependency.Repository) error {
		return rep.Records().UpsertIntegratedRecords(ctx, records)
	})
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't upsert records",
			slog.String("batch_id", batchId),
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Default().InfoContext(r.Context(), "landed record batch",
		slog.String("batch_id", batchId),
		slog.Int("count", len(records)),
	)
	respondJSON(w, http.StatusOK, upsertRecordsResponse{
		BatchId: batchId,
		Count:   len(records),
	})
}

type upsertAdjustmentRequest struct {
	TenantId int `json:"tenant_id"`
	dto.AdjustmentUpsert
}

func (s *Server) handleUpsertAdjustment(w http.ResponseWriter, r *http.Request) {
	var req upsertAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.TenantId <= 0 {
		respondError(w, http.StatusBadRequest, "tenant_id must be positive")
		return
	}

	adj, err := dto.ConvertAdjustmentUpsertToEntity(req.TenantId, req.AdjustmentUpsert)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.rep.Adjustments().UpsertAdjustment(r.Context(), adj); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't upsert adjustment",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
