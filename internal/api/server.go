package api

import (
	"net/http"

	"github.com/PredicateSystems/secureclaw/internal/api/middleware"
	"github.com/PredicateSystems/secureclaw/internal/audit"
	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/service"
	"github.com/PredicateSystems/secureclaw/internal/tasks"
)

type Server struct {
	authzService *service.AuthorizationService
	taskManager  *tasks.Manager
	auditor      core.Auditor
}

func NewServer(
	authzService *service.AuthorizationService,
	taskManager *tasks.Manager,
	auditor core.Auditor,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Server{
		authzService: authzService,
		taskManager:  taskManager,
		auditor:      auditor,
	}
}

// Routes builds the handler tree. An empty signing key leaves the
// reload and admin routes unauthenticated, for loopback-only
// deployments where the token round-trip buys nothing.
func (s *Server) Routes(adminSigningKey []byte) http.Handler {
	adminWrap := func(h http.Handler) http.Handler { return h }
	if len(adminSigningKey) > 0 {
		adminWrap = middleware.AdminAuth(adminSigningKey)
	}

	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// decision route stays unauthenticated, every local caller
	// must be able to ask
	mux.HandleFunc("POST "+AuthorizeRoute, s.handleAuthorize)

	mux.Handle("POST "+ReloadPolicyRoute, adminWrap(http.HandlerFunc(s.handleReloadPolicy)))

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudits)
	adminMux.HandleFunc("POST "+ExplainRoute, s.handleExplain)
	adminMux.HandleFunc("GET "+ListTasksRoute, s.handleListTasks)
	adminMux.HandleFunc("POST "+TriggerTaskRoute, s.handleTriggerTask)
	adminMux.HandleFunc("GET "+LogsForTaskRoute, s.handleLogsForTask)
	mux.Handle(AdminParent, adminWrap(adminMux))

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
