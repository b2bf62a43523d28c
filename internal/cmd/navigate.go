package cmd

import (
	"sync"

	"github.com/felixgeelhaar/alumni/internal/log"
	"github.com/felixgeelhaar/alumni/internal/session"
)

// Navigator records where the session manager sent the user. A command reads it
// after an operation to decide what to show next.
type Navigator struct {
	mu     sync.Mutex
	last   session.Route
	logger *log.Logger
}

// Navigate implements session.Navigator
func (n *Navigator) Navigate(route session.Route) {
	n.mu.Lock()
	n.last = route
	n.mu.Unlock()

	n.logger.Debug("navigate", "route", string(route))
}

// Last returns the most recent route, or "" if there was none
func (n *Navigator) Last() session.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// hint is the next command to suggest after navigating to route
func hint(route session.Route) string {
	switch route {
	case session.RouteLogin:
		return "Next: alumni login"
	case session.RouteDashboard:
		return "Next: alumni dashboard"
	default:
		return ""
	}
}
