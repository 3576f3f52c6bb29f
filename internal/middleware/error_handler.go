package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"navshell/internal/routes"
	"navshell/web/templates/pages"
	"navshell/web/templates/shared"
)

// NewErrorHandler creates the Echo error handler. HTML requests get the
// application shell with an error page; API paths get JSON.
func NewErrorHandler(links []routes.NavLink, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code

			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" || errorMessage == http.StatusText(code) {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			default:
				errorTitle = http.StatusText(code)
			}
		}
		if errorMessage == "" {
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		} else {
			logger.Debug("request rejected", zap.String("uri", c.Request().RequestURI), zap.Int("status", code), zap.Error(err))
		}

		if isAPIPath(c.Request().URL.Path) {
			if jsonErr := c.JSON(code, map[string]string{"error": errorMessage}); jsonErr != nil {
				logger.Error("failed to write error response", zap.Error(jsonErr))
			}
			return
		}

		content := pages.ErrorPage(pages.ErrorPageProps{ErrorTitle: errorTitle, ErrorMessage: errorMessage})
		if code == http.StatusNotFound {
			content = pages.NotFoundPage()
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if c.Request().Method == http.MethodHead {
			return
		}

		layout := shared.Layout(shared.LayoutProps{Title: errorTitle, Links: links, Content: content})
		if renderErr := layout.Render(c.Request().Context(), c.Response()); renderErr != nil {
			// Headers are gone at this point, append a plain text fallback
			logger.Error("failed to render error page", zap.Error(fmt.Errorf("render: %w", renderErr)))
			_, _ = c.Response().Write([]byte(errorMessage))
		}
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/_nav/") || path == "/healthz"
}
