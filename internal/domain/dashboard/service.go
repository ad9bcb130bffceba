package dashboard

import "context"

// DashboardService composes the employee dashboard summary from the
// attendance, leave and task aggregates.
type DashboardService interface {
	GetSummary(ctx context.Context, employeeID string) (SummaryResponse, error)
}
