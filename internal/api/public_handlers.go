package api

import (
	"net/http"

	"github.com/PredicateSystems/secureclaw/internal/api/presenter"
	"github.com/PredicateSystems/secureclaw/internal/buildinfo"
)

type HealthResponse struct {
	Status        string `json:"status"`
	PolicyVersion string `json:"policy_version"`
	PolicyRules   int    `json:"policy_rules"`
}

// handleHealth is the liveness probe. The store can never be empty, so
// reaching this handler means a policy document is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	doc := s.authzService.CurrentDocument()
	presenter.JSON(w, r, HealthResponse{
		Status:        "ok",
		PolicyVersion: doc.Version,
		PolicyRules:   len(doc.Rules),
	}, http.StatusOK)
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}
