package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/icanhazclaw"

	AuthorizeRoute    = "/v1/authorize"
	ReloadPolicyRoute = "/v1/policy/reload"

	AdminParent     = "/v1/admin/"
	ListAuditsRoute = AdminParent + "audits"
	ExplainRoute    = AdminParent + "explain"

	TaskParent       = AdminParent + "tasks/"
	ListTasksRoute   = TaskParent
	TriggerTaskRoute = TaskParent + "{name}/trigger"
	LogsForTaskRoute = TaskParent + "{name}/logs"
)
