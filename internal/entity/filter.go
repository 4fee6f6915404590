package entity

import "time"

// ReportFilter is the filter contract shared by all report builders.
// From/To are inclusive day bounds; nil means unbounded. ProductName is a
// case-insensitive substring match. ApplyAdjustments defaults to true via
// NewReportFilter; when false, fake purchase deductions are resolved but
// not applied (the "before adjustment" view).
type ReportFilter struct {
	TenantId         int
	From             *time.Time
	To               *time.Time
	ProductName      string
	ApplyAdjustments bool
}

func NewReportFilter(tenantId int) ReportFilter {
	return ReportFilter{
		TenantId:         tenantId,
		ApplyAdjustments: true,
	}
}
