package server

import "github.com/reelhouse/auth-service/users"

const (
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthRefresh  = "/auth/refresh-token"
	RouteAuthLogout   = "/auth/logout"
	RouteUsersMe      = "/users/me"
	RouteUsers        = "/users"
)

func (s *Server) initRoutes() {
	// Public auth routes
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshTokenHandler(), s.APIMiddleware()...))

	// Logout needs a verified access token to know whose session to drop
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.protected()...))

	// User routes behind the authorization gate
	s.RegisterRouteFunc("GET "+RouteUsersMe, ChainMiddleware(s.ProfileHandler(), s.protected()...))
	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.protected(s.RequireRole(users.RoleAdmin))...))
}

// protected composes the API middleware with the authenticate gate and any
// additional per-route checks.
func (s *Server) protected(extra ...Middleware) []Middleware {
	mw := append(s.APIMiddleware(), s.Authenticate())
	return append(mw, extra...)
}
