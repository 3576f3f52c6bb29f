package shared

import (
	"github.com/a-h/templ"

	"navshell/internal/routes"
)

// LayoutProps holds the data for the application shell
type LayoutProps struct {
	Title   string
	Links   []routes.NavLink
	Content templ.Component
}

func documentTitle(title string) string {
	if title == "" {
		return "navshell"
	}
	return title + " | navshell"
}
