package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"navshell/internal/handlers"
	navMiddleware "navshell/internal/middleware"
	"navshell/internal/routes"
	"navshell/internal/session"
)

// Options configures the HTTP server
type Options struct {
	Table         *routes.Table
	Links         []routes.NavLink
	Store         session.Store
	Logger        *zap.Logger
	SecureCookies bool
	// SessionMaxAge is the session cookie lifetime in seconds, 0 for a
	// browser session cookie
	SessionMaxAge int
}

// New assembles the Echo instance serving the navigation shell
func New(opts Options) *echo.Echo {
	if opts.Table == nil {
		opts.Table = routes.DefaultTable()
	}
	if opts.Links == nil {
		opts.Links = routes.DefaultLinks()
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore(0, 0)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	for _, prefix := range opts.Table.Duplicates() {
		opts.Logger.Warn("route prefix declared more than once, first declaration wins", zap.String("prefix", prefix))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = navMiddleware.NewErrorHandler(opts.Links, opts.Logger)

	// Middleware
	e.Use(navMiddleware.RequestLogger(opts.Logger))
	e.Use(echomw.Recover())
	e.Use(navMiddleware.Session(navMiddleware.SessionOptions{
		Secure: opts.SecureCookies,
		MaxAge: opts.SessionMaxAge,
	}))

	navigator := handlers.NewNavigatorHandler(opts.Table, opts.Links, opts.Store, opts.Logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/_nav/current", navigator.Current)
	e.GET("/_nav/routes", navigator.Routes)
	e.POST("/navigate", navigator.Navigate)

	// Browsers request these on their own, they are not pages
	notFound := func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}
	e.Match([]string{http.MethodGet, http.MethodHead}, "/favicon.ico", notFound)
	e.Match([]string{http.MethodGet, http.MethodHead}, "/robots.txt", notFound)

	// Everything else goes through the route table
	e.Match([]string{http.MethodGet, http.MethodHead}, "/*", navigator.Page)

	return e
}
