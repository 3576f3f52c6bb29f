package handlers

import "navshell/internal/routes"

// CurrentResponse is the body of GET /_nav/current
type CurrentResponse struct {
	Path string        `json:"path"`
	Page routes.PageID `json:"page"`
}

// RoutesResponse is the body of GET /_nav/routes
type RoutesResponse struct {
	Routes   []routes.RouteEntry `json:"routes"`
	Fallback routes.PageID       `json:"fallback"`
	Links    []routes.NavLink    `json:"links"`
}
