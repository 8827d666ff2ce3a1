package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/internal/config"
)

// RouteClass is the access class a page path falls into.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthOnly
	RouteProtected
	RouteAdmin
)

// RouteGuard gates page routes on session-cookie PRESENCE only. It never
// decodes or verifies the cookie; that is the session middleware's job on
// the API side. Admin role checking is likewise not done here.
type RouteGuard struct {
	cookieName string
	routes     config.RouteClasses
}

// NewRouteGuard creates a route guard over the configured route classes.
func NewRouteGuard(cookieName string, routes config.RouteClasses) *RouteGuard {
	return &RouteGuard{cookieName: cookieName, routes: routes}
}

// Classify buckets a path by longest-prefix semantics over the fixed lists.
// Unknown paths default to public.
func (g *RouteGuard) Classify(path string) RouteClass {
	for _, p := range g.routes.Admin {
		if hasPathPrefix(path, p) {
			return RouteAdmin
		}
	}
	for _, p := range g.routes.Protected {
		if hasPathPrefix(path, p) {
			return RouteProtected
		}
	}
	for _, p := range g.routes.AuthOnly {
		if hasPathPrefix(path, p) {
			return RouteAuthOnly
		}
	}
	return RoutePublic
}

// Bypassed reports whether the guard should ignore a path entirely: API
// routes, build-internal assets, and anything with a file extension.
func (g *RouteGuard) Bypassed(path string) bool {
	for _, p := range g.routes.Bypass {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return strings.Contains(path, ".")
}

// Handler returns the guard as Gin middleware.
func (g *RouteGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if g.Bypassed(path) {
			c.Next()
			return
		}

		_, err := c.Cookie(g.cookieName)
		hasSession := err == nil

		switch g.Classify(path) {
		case RouteAuthOnly:
			if hasSession {
				c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
				c.Abort()
				return
			}
		case RouteProtected, RouteAdmin:
			if !hasSession {
				// Slashes are legal in a query value; the path goes through
				// verbatim so the login page can navigate straight back.
				c.Redirect(http.StatusTemporaryRedirect, "/login?callbackUrl="+path)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// hasPathPrefix matches on path-segment boundaries: "/admin" matches
// "/admin" and "/admin/x" but not "/administrator".
func hasPathPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
