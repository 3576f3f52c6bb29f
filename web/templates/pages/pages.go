package pages

import (
	"github.com/a-h/templ"

	"navshell/internal/routes"
)

// ErrorPageProps holds data for the error page
type ErrorPageProps struct {
	ErrorTitle   string
	ErrorMessage string
}

// ForID returns the component for a page. Unknown IDs get NotFoundPage.
func ForID(id routes.PageID) templ.Component {
	switch id {
	case routes.One:
		return OnePage()
	case routes.Two:
		return TwoPage()
	case routes.Three:
		return ThreePage()
	default:
		return NotFoundPage()
	}
}

// Title returns the document title of a page
func Title(id routes.PageID) string {
	switch id {
	case routes.One:
		return "Page one"
	case routes.Two:
		return "Page two"
	case routes.Three:
		return "Page three"
	default:
		return "Page not found"
	}
}
