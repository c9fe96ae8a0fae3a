package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/domain"
	"github.com/heartmarshall/culops-pantry/pkg/ctxutil"
)

// IdempotencyKeyHeader carries the caller's idempotency key on writes.
const IdempotencyKeyHeader = "Idempotency-Key"

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []fieldErrorPayload `json:"fields,omitempty"`
}

type fieldErrorPayload struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps service errors to HTTP statuses. Anything unrecognised is
// logged and reported as a generic 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: "validation error"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldErrorPayload{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidPlanConfiguration),
		errors.Is(err, domain.ErrPlanNotConfigured):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrUnsupportedPartner):
		writeError(w, http.StatusUnprocessableEntity, "unsupported partner")
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, culops.ErrMalformedPayload):
		log.WarnContext(r.Context(), "culops request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "culops unavailable")
	default:
		attrs := []any{slog.String("error", err.Error())}
		var serr *domain.ServerError
		if errors.As(err, &serr) && serr.Cause() != nil {
			attrs = append(attrs, slog.String("cause", serr.Cause().Error()))
		}
		log.ErrorContext(r.Context(), "internal error", attrs...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into v. It writes the error response
// itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// partnerID returns the partner resolved by withPartner.
func partnerID(r *http.Request) string {
	id, _ := ctxutil.PartnerIDFromCtx(r.Context())
	return id
}

// withPartner stores the {partnerID} path value in the request context.
func withPartner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxutil.WithPartnerID(r.Context(), r.PathValue("partnerID"))
		next(w, r.WithContext(ctx))
	}
}
