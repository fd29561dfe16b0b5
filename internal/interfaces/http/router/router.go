package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// AdminRouteRegistrar registers routes behind admin authentication
type AdminRouteRegistrar interface {
	RegisterAdminRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Public registrars attach under
// /api/<version>, admin registrars under /api/<version>/admin behind the
// configured admin middleware.
type Router struct {
	engine          *gin.Engine
	apiVersion      string
	registrars      []RouteRegistrar
	adminRegistrars []AdminRouteRegistrar
	adminMiddleware []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAdminMiddleware sets the middleware chain applied to admin routes
func WithAdminMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.adminMiddleware = mw
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to the public route group
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterAdmin adds an AdminRouteRegistrar to the admin route group
func (r *Router) RegisterAdmin(registrar AdminRouteRegistrar) *Router {
	r.adminRegistrars = append(r.adminRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(r.adminMiddleware...)
	for _, registrar := range r.adminRegistrars {
		registrar.RegisterAdminRoutes(admin)
	}
}
