package response

import (
	"errors"
	"net/http"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// HandleError maps service-layer errors to HTTP responses. Handlers call
// this once instead of switching on sentinels themselves.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var overlapErr *leave.OverlapError
	if errors.As(err, &overlapErr) {
		BadRequestCode(w, "OVERLAPPING_LEAVE", overlapErr.Error(), map[string]string{
			"conflict_id":    overlapErr.ConflictID,
			"conflict_start": overlapErr.ConflictStart.Format("2006-01-02"),
			"conflict_end":   overlapErr.ConflictEnd.Format("2006-01-02"),
		})
		return
	}

	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequestCode(w, "ALREADY_CHECKED_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		BadRequestCode(w, "NO_ACTIVE_CHECK_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequestCode(w, "ALREADY_CHECKED_OUT", err.Error(), nil)
	case errors.Is(err, attendance.ErrBreakAlreadyActive):
		BadRequestCode(w, "BREAK_ALREADY_ACTIVE", err.Error(), nil)
	case errors.Is(err, attendance.ErrNoActiveBreak):
		BadRequestCode(w, "NO_ACTIVE_BREAK", err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequestCode(w, "INVALID_DATE_RANGE", err.Error(), nil)
	case errors.Is(err, leave.ErrPastStartDate):
		BadRequestCode(w, "PAST_START_DATE", err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequestCode(w, "INVALID_LEAVE_TYPE", err.Error(), nil)
	case errors.Is(err, leave.ErrNotCancellable):
		BadRequestCode(w, "NOT_CANCELLABLE", err.Error(), nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, err.Error())
	default:
		InternalServerError(w, "Internal server error")
	}
}
