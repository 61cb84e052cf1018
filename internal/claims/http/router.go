package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/pkg/httpx"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
	"github.com/aussiebroadwan/claims/pkg/slogx"

	_ "github.com/aussiebroadwan/claims/api/claims" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	IdentityService  *service.IdentityService
	ExpenseService   *service.ExpenseService
	AnalyticsService *service.AnalyticsService
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerIdentities()
	r.registerExpenses()
	r.registerAnalytics()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Expense Claims API
//	@version		0.1.0
//	@description	Employees submit expense claims, administrators approve or reject them.
//	@description
//	@description				Access tokens are EdDSA signed JWTs obtained from register or login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/claims
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(identityResolver{identities: r.IdentityService}),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Identities: r.IdentityService}

	// Register and login are credential endpoints, strict limit by IP
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerIdentities() {
	h := &IdentitiesHandler{Identities: r.IdentityService}

	r.Mux.Handle("GET /v1/me", r.secured(http.HandlerFunc(h.HandleMe), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/identities", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/identities/{id}/deactivate", r.secured(http.HandlerFunc(h.HandleDeactivate), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/identities/{id}/activate", r.secured(http.HandlerFunc(h.HandleActivate), httpx.ModerateLimit))
}

func (r *Router) registerExpenses() {
	h := &ExpensesHandler{Expenses: r.ExpenseService}

	// Writes are moderate, reads lenient
	r.Mux.Handle("POST /v1/expenses", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/expenses", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/expenses/pending", r.secured(http.HandlerFunc(h.HandlePending), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/expenses/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/expenses/{id}/status", r.secured(http.HandlerFunc(h.HandleTransition), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/expenses/{id}/approve", r.secured(http.HandlerFunc(h.HandleApprove), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/expenses/{id}/reject", r.secured(http.HandlerFunc(h.HandleReject), httpx.ModerateLimit))
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{Analytics: r.AnalyticsService}
	r.Mux.Handle("GET /v1/analytics", r.secured(h, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
