package routes

import "strings"

// RouteDefinition maps a path prefix to the service that owns it
type RouteDefinition struct {
	Prefix       string `json:"prefix"`
	ServiceName  string `json:"service"`
	Description  string `json:"description"`
	RequireAuth  bool   `json:"requireAuth"`
	RequireAdmin bool   `json:"requireAdmin"`
}

// Routes holds all relayed prefixes, relative to the context path
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/users",
		ServiceName: "user-service",
		Description: "Users",
	},
	{
		Prefix:       "/api/credentials",
		ServiceName:  "user-service",
		Description:  "Login credentials",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:      "/api/address",
		ServiceName: "user-service",
		Description: "User addresses",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/products",
		ServiceName: "product-service",
		Description: "Product catalogue",
	},
	{
		Prefix:      "/api/categories",
		ServiceName: "product-service",
		Description: "Product categories",
	},
	{
		Prefix:      "/api/carts",
		ServiceName: "order-service",
		Description: "Carts",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/orders",
		ServiceName: "order-service",
		Description: "Orders",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/payments",
		ServiceName: "payment-service",
		Description: "Payments",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/shippings",
		ServiceName: "shipping-service",
		Description: "Shipped order items",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/favourites",
		ServiceName: "favourite-service",
		Description: "Favourite products",
		RequireAuth: true,
	},
}

// Match finds the route owning path. path is relative to the context path.
func Match(path string) (RouteDefinition, bool) {
	for _, route := range Routes {
		if path == route.Prefix || strings.HasPrefix(path, route.Prefix+"/") {
			return route, true
		}
	}
	return RouteDefinition{}, false
}

// ServiceResolver returns a function naming the service behind a full
// request path, or "" for paths the gateway answers itself.
func ServiceResolver(contextPath string) func(path string) string {
	return func(path string) string {
		rest, ok := strings.CutPrefix(path, contextPath)
		if !ok {
			return ""
		}
		route, ok := Match(rest)
		if !ok {
			return ""
		}
		return route.ServiceName
	}
}

// Services lists every distinct service in the table in order of appearance
func Services() []string {
	seen := make(map[string]bool)
	var names []string
	for _, route := range Routes {
		if !seen[route.ServiceName] {
			seen[route.ServiceName] = true
			names = append(names, route.ServiceName)
		}
	}
	return names
}
