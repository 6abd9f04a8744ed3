package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/PredicateSystems/secureclaw/internal/policy"
	"github.com/PredicateSystems/secureclaw/internal/service"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id"`

	// ErrorKind and Rule identify the precise validation failure on
	// policy reload rejections.
	ErrorKind string `json:"error_kind,omitempty"`
	Rule      string `json:"rule,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Error:         msg,
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, status)
}

// Err maps a service error onto an HTTP response, carrying validation
// detail through when the cause is a rejected policy document.
func Err(w http.ResponseWriter, r *http.Request, err error, short string) {
	status := http.StatusBadRequest // generic default status
	var httpError *service.HTTPError
	if errors.As(err, &httpError) {
		status = httpError.StatusCode
	}

	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Error:         short + ": " + err.Error(),
		CorrelationID: correlationID,
	}

	var verr *policy.ValidationError
	if errors.As(err, &verr) {
		resp.ErrorKind = string(verr.Kind)
		resp.Rule = verr.Rule
	}

	JSON(w, r, resp, status)
}
