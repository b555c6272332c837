package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/yogastudio/internal/common"
)

const (
	msgBadRequest      = "Bad request: the provided data is invalid, operation is not allowed."
	msgNotFound        = "Not found: the data you are looking for is unavailable."
	msgUnauthorized    = "Unauthorized"
	msgForbidden       = "Forbidden"
	msgTooManyRequests = "Too many requests"
	msgInternal        = "Internal server error"
	msgEmailTaken      = "Error: Email is already taken!"
)

// errorStatuses maps error kinds to responses. Order matters: the first
// entry matching via errors.Is wins, so internal failures are checked
// before anything they may wrap.
var errorStatuses = []struct {
	kind    error
	status  int
	message string
}{
	{common.ErrorInternal, http.StatusInternalServerError, msgInternal},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, msgUnauthorized},
	{common.ErrorUnauthorized, http.StatusUnauthorized, msgUnauthorized},
	{common.ErrForbidden, http.StatusForbidden, msgForbidden},
	{common.ErrorNotFound, http.StatusNotFound, msgNotFound},
	{common.ErrEmailTaken, http.StatusBadRequest, msgEmailTaken},
	{common.ErrAlreadyParticipating, http.StatusBadRequest, msgBadRequest},
	{common.ErrNotParticipating, http.StatusBadRequest, msgBadRequest},
	{common.ErrInvalidReference, http.StatusBadRequest, msgBadRequest},
	{common.ErrBadRequest, http.StatusBadRequest, msgBadRequest},
}

// statusFor classifies err. Unknown errors are a 500.
func statusFor(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.kind) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}
