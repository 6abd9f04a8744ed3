package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/PredicateSystems/secureclaw/internal/api/presenter"
	"github.com/PredicateSystems/secureclaw/internal/core"
)

// handleAdminAudits retrieves decision records from the configured
// auditor, when it supports reading back.
func (s *Server) handleAdminAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	reader, ok := s.auditor.(core.AuditReader)
	if !ok {
		presenter.Error(w, r, "configured audit sink is not queryable", http.StatusNotImplemented)
		return
	}

	q := r.URL.Query()
	limitStr := q.Get("limit")

	filterCorrelationID := q.Get("correlation_id")
	filterPrincipal := q.Get("principal")
	filterRule := q.Get("rule")

	limit := 50
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v <= 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	var records []core.AuditRecord
	var err error

	if filterCorrelationID != "" || filterPrincipal != "" || filterRule != "" {
		records, err = reader.Find(func(record core.AuditRecord) bool {
			if filterCorrelationID != "" && record.ID != filterCorrelationID {
				return false
			}
			if filterPrincipal != "" && record.Principal != filterPrincipal {
				return false
			}
			if filterRule != "" && record.MatchedRule != filterRule {
				return false
			}
			return true
		}, limit)
	} else {
		records, err = reader.GetRecent(limit)
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit records")
		presenter.Error(w, r, "failed to retrieve audit records", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, records, http.StatusOK)
}
