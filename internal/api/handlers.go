package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/PredicateSystems/secureclaw/internal/api/presenter"
	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/policy"
)

// DecodePayload decodes a JSON request body strictly: unknown fields
// and trailing data are rejected so a malformed request never silently
// degrades into a default-deny decision with the wrong shape.
func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch contentType(r) {
	case "application/json", "":
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// contentType extracts the media type of the request body, dropping
// parameters like charset.
func contentType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mediaType
}

// handleAuthorize processes decision requests.
func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var req core.AuthorizationRequest
	if err := DecodePayload(r, &req, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode authorization request")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	decision, err := s.authzService.Authorize(ctx, &req)
	if err != nil {
		presenter.Err(w, r, err, "authorization request rejected")
		return
	}

	// a deny is a successful evaluation, not an error
	presenter.JSON(w, r, decision, http.StatusOK)
}

// handleReloadPolicy validates the posted document and swaps it in.
func (s *Server) handleReloadPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read policy document body")
		presenter.Error(w, r, "invalid request body", http.StatusBadRequest)
		return
	}

	format := policy.FormatJSON
	if ct := contentType(r); ct == "application/yaml" || ct == "text/yaml" {
		format = policy.FormatYAML
	}

	if err := s.authzService.Reload(ctx, raw, format); err != nil {
		presenter.Err(w, r, err, "policy rejected")
		return
	}

	doc := s.authzService.CurrentDocument()
	presenter.JSON(w, r, ReloadResponse{
		Version: doc.Version,
		Rules:   len(doc.Rules),
	}, http.StatusOK)
}

type ReloadResponse struct {
	Version string `json:"version"`
	Rules   int    `json:"rules"`
}

// handleExplain runs a traced evaluation for operator debugging.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var req core.AuthorizationRequest
	if err := DecodePayload(r, &req, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode explain request")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	trace, err := s.authzService.Explain(ctx, &req)
	if err != nil {
		presenter.Err(w, r, err, "explain request rejected")
		return
	}

	presenter.JSON(w, r, trace, http.StatusOK)
}
