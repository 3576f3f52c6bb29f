package routes

// DefaultTable returns the application's route table
func DefaultTable() *Table {
	return NewTable(NotFound,
		RouteEntry{PathPrefix: "/one", Page: One},
		RouteEntry{PathPrefix: "/two", Page: Two},
		RouteEntry{PathPrefix: "/three", Page: Three},
	)
}

// DefaultLinks returns the navigation bar links in display order
func DefaultLinks() []NavLink {
	return []NavLink{
		{TargetPath: "/one", Label: "Page one"},
		{TargetPath: "/two", Label: "Page two"},
		{TargetPath: "/three", Label: "Page three"},
		{TargetPath: "/foobar", Label: "This page doesn't exist"},
	}
}
