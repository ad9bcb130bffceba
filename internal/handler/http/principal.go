package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/response"
)

// authorizeEmployee ensures the authenticated principal may act as the
// employee addressed by the URL. Tokens without an employee_id claim are
// service credentials and may address any employee.
func authorizeEmployee(w http.ResponseWriter, r *http.Request, employeeID string) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return false
	}

	claimID, ok := claims["employee_id"].(string)
	if ok && claimID != "" && claimID != employeeID {
		response.Forbidden(w, "You cannot act on behalf of another employee")
		return false
	}

	return true
}
