package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medcare-api/internal/application"
	"medcare-api/pkg/response"
)

// statusByKind is the explicit error-kind to HTTP status table. Policy
// decisions: duplicate email is 409; missing and invalid/expired sessions
// both collapse to 401.
var statusByKind = map[application.Kind]int{
	application.KindValidation:      http.StatusBadRequest,
	application.KindInvalidState:    http.StatusBadRequest,
	application.KindDuplicate:       http.StatusConflict,
	application.KindAuthentication:  http.StatusUnauthorized,
	application.KindUnauthenticated: http.StatusUnauthorized,
	application.KindInvalidSession:  http.StatusUnauthorized,
	application.KindNotFound:        http.StatusNotFound,
	application.KindInternal:        http.StatusInternalServerError,
}

// writeError maps a service-layer error to its HTTP response. Anything that
// is not an application.Error is an unclassified failure and surfaces as a
// bare 500 with no internal detail.
func writeError(c *gin.Context, err error) {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		status, ok := statusByKind[appErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		response.Fail(c, status, appErr.Message, appErr.Details)
		return
	}
	response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
}
