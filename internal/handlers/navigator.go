package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	navMiddleware "navshell/internal/middleware"
	"navshell/internal/routes"
	"navshell/internal/session"
	"navshell/web/templates/pages"
	"navshell/web/templates/shared"
)

// NavigatorHandler renders the navigation shell and dispatches each path
// to exactly one page
type NavigatorHandler struct {
	table  *routes.Table
	links  []routes.NavLink
	store  session.Store
	logger *zap.Logger
}

// NewNavigatorHandler creates a new NavigatorHandler
func NewNavigatorHandler(table *routes.Table, links []routes.NavLink, store session.Store, logger *zap.Logger) *NavigatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigatorHandler{table: table, links: links, store: store, logger: logger}
}

// Page resolves the request path and renders the matching page inside the
// shell. Unmatched paths render the not found page with status 404. Only
// document navigations update the session's current path.
func (h *NavigatorHandler) Page(c echo.Context) error {
	path := c.Request().URL.Path
	page := h.table.Resolve(path)
	c.Set(navMiddleware.PageKey, page.String())

	if isNavigation(c.Request()) {
		h.recordPath(c, path)
	}

	status := http.StatusOK
	if _, matched := h.table.Match(path); !matched {
		status = http.StatusNotFound
	}

	props := shared.LayoutProps{
		Title:   pages.Title(page),
		Links:   h.links,
		Content: pages.ForID(page),
	}
	return render(c, status, shared.Layout(props))
}

// Navigate is the programmatic counterpart of activating a link. It sets
// the session's current path to the "to" field and redirects there.
func (h *NavigatorHandler) Navigate(c echo.Context) error {
	to := c.FormValue("to")
	if !isLocalPath(to) {
		return echo.NewHTTPError(http.StatusBadRequest, "Navigation target must be an absolute local path")
	}

	c.Set(navMiddleware.PageKey, h.table.Resolve(to).String())
	h.recordPath(c, to)

	return c.Redirect(http.StatusSeeOther, to)
}

// Current reports the session's current path and the page it resolves to
func (h *NavigatorHandler) Current(c echo.Context) error {
	resp := CurrentResponse{Page: h.table.Fallback()}

	if id := navMiddleware.SessionID(c); id != "" && h.store != nil {
		path, ok, err := h.store.CurrentPath(c.Request().Context(), id)
		if err != nil {
			h.logger.Error("failed to read current path", zap.String("session", id), zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Session store unavailable")
		}
		if ok {
			resp.Path = path
			resp.Page = h.table.Resolve(path)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Routes lists the route table and the navigation links
func (h *NavigatorHandler) Routes(c echo.Context) error {
	return c.JSON(http.StatusOK, RoutesResponse{
		Routes:   h.table.Entries(),
		Fallback: h.table.Fallback(),
		Links:    h.links,
	})
}

// recordPath stores the session's current path. Store failures are logged
// and never block rendering.
func (h *NavigatorHandler) recordPath(c echo.Context, path string) {
	if h.store == nil {
		return
	}
	id := navMiddleware.EnsureSessionID(c)
	if id == "" {
		return
	}
	if err := h.store.SetCurrentPath(c.Request().Context(), id, path); err != nil {
		h.logger.Warn("failed to record current path",
			zap.String("session", id),
			zap.String("path", path),
			zap.Error(err))
	}
}

func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	if c.Request().Method == http.MethodHead {
		return nil
	}
	return component.Render(c.Request().Context(), c.Response())
}

// isNavigation reports whether the request is a top-level document load.
// Subresource fetches and prefetches are not.
func isNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	purpose := r.Header.Get("Sec-Purpose") + r.Header.Get("Purpose")
	if strings.Contains(strings.ToLower(purpose), "prefetch") {
		return false
	}
	if mode := r.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// isLocalPath accepts absolute paths on this host only. Browsers drop tabs
// and newlines from URLs, so any control character is rejected before the
// protocol-relative checks.
func isLocalPath(path string) bool {
	if len(path) == 0 || path[0] != '/' {
		return false
	}
	for i := 0; i < len(path); i++ {
		if path[i] < 0x20 || path[i] == 0x7f {
			return false
		}
	}
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return false
	}
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
