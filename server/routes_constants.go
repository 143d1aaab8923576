package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth routes
	RouteLogin         = "/login"
	RouteOAuthCallback = "/oauth/callback"
	RouteLogout        = "/logout"

	// Catalog page routes
	RouteHome           = "/{$}"
	RouteCategories     = "/categories/{$}"
	RouteCategory       = "/categories/{id}/{$}"
	RouteCategoryItems  = "/categories/{id}/items/{$}"
	RouteCategoryUpdate = "/categories/{id}/update/{$}"
	RouteCategoryDelete = "/categories/{id}/delete/{$}"
	RouteItemNew        = "/items/new/{$}"
	RouteItem           = "/items/{id}/{$}"
	RouteItemUpdate     = "/items/{id}/update/{$}"
	RouteItemDelete     = "/items/{id}/delete/{$}"

	// Read-only API routes
	RouteAPICategories = "/api/categories/{$}"
	RouteAPIItems      = "/api/items/{$}"
)
