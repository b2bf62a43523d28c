package session

// Route is a view the client can be sent to
type Route string

// Routes
const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Navigator receives navigation signals from the Manager
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(Route)

// Navigate calls f(r)
func (f NavigatorFunc) Navigate(r Route) { f(r) }

type nopNavigator struct{}

func (nopNavigator) Navigate(Route) {}
