package response

import (
	"errors"
	"net/http"

	"github.com/peakhr/hr-console-go/internal/client/hrcore"
	"github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/domain/leave"
	"github.com/peakhr/hr-console-go/internal/domain/notification"
	"github.com/peakhr/hr-console-go/internal/pkg/jwt"
	"github.com/peakhr/hr-console-go/internal/pkg/validator"
)

// HandleError maps domain errors to the matching HTTP response. Upstream
// HR core errors keep their original status code and message.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var apiErr *hrcore.APIError
	if errors.As(err, &apiErr) {
		UpstreamError(w, apiErr.StatusCode, apiErr.Code, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, directory.ErrEmployeeNotFound),
		errors.Is(err, directory.ErrTeamNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrRemarksRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
