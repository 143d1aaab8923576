package server

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteOAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Catalog pages
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomepageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.HomepageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategory, ChainMiddleware(s.CategoryPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategoryItems, ChainMiddleware(s.CategoryPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategoryUpdate, ChainMiddleware(s.CategoryUpdateGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCategoryUpdate, ChainMiddleware(s.CategoryUpdatePostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategoryDelete, ChainMiddleware(s.CategoryDeleteGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCategoryDelete, ChainMiddleware(s.CategoryDeletePostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteItemNew, ChainMiddleware(s.ItemNewGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteItemNew, ChainMiddleware(s.ItemNewPostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteItem, ChainMiddleware(s.ItemPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteItemUpdate, ChainMiddleware(s.ItemUpdateGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteItemUpdate, ChainMiddleware(s.ItemUpdatePostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteItemDelete, ChainMiddleware(s.ItemDeleteGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteItemDelete, ChainMiddleware(s.ItemDeletePostHandler(), s.HTMLMiddleware()...))

	// Read-only API
	s.RegisterRouteHandler("GET "+RouteAPICategories, ChainMiddleware(s.CategoriesAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIItems, ChainMiddleware(s.ItemsAPIHandler(), s.APIMiddleware()...))
}
