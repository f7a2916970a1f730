package router

// Route names understood by the app route table. Any other name resolves to
// RouteLanding.
const (
	RouteLanding   = "landing"
	RouteQuiz      = "quiz"
	RouteDashboard = "dashboard"
)
