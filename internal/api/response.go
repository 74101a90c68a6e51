package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"reservequeue/internal/catalog"
	apperrors "reservequeue/internal/errors"
	"reservequeue/internal/repository"
	"reservequeue/internal/reservation"
	"reservequeue/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps service errors onto HTTP statuses. Anything unknown is a 500
// and its text is not sent to the client.
func writeError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	writeMessage(w, he.Code, he.Message)
}

func toHTTPError(err error) *apperrors.HTTPError {
	var he *apperrors.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, reservation.ErrCapacityExceeded),
		errors.Is(err, reservation.ErrDuplicateReservation):
		return apperrors.ErrConflict(reservation.Reason(err))
	case errors.Is(err, reservation.ErrInvalidDate),
		errors.Is(err, reservation.ErrDateRequired),
		errors.Is(err, reservation.ErrShopRequired):
		return apperrors.ErrBadRequest(reservation.Reason(err))
	case errors.Is(err, repository.ErrTicketNotFound):
		return apperrors.ErrNotFound("Ticket not found")
	case errors.Is(err, catalog.ErrShopNotFound):
		return apperrors.ErrNotFound("Hospital not found")
	case errors.Is(err, repository.ErrEmailTaken):
		return apperrors.ErrBadRequest("User already exists")
	case errors.Is(err, service.ErrMissingFields):
		return apperrors.ErrBadRequest("Please add all fields")
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.ErrUnauthorized("Invalid credentials")
	default:
		return apperrors.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ErrBadRequest("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.ErrBadRequest("Invalid field: " + verrs[0].Field())
		}
		return apperrors.ErrBadRequest("Invalid request body")
	}
	return nil
}
