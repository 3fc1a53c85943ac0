package adminsite

import (
	"errors"
	"strings"
	"sync"
)

// ErrRouteNotFound signals a name that was never registered, as opposed to
// a failure while resolving; callers fall back to a literal URL on this error
var ErrRouteNotFound = errors.New("named route not found")

// RouteTable maps route names (ex: "ops:syshealth") to concrete paths.
// Routes are registered once at startup and read per request afterwards.
type RouteTable struct {
	mu     sync.RWMutex
	routes map[string]string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{routes: make(map[string]string)}
}

// Register associates a name with a path, replacing any previous entry
func (t *RouteTable) Register(name string, path string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	t.mu.Lock()
	t.routes[name] = path
	t.mu.Unlock()
}

// Resolve returns the path for a route name, or ErrRouteNotFound
func (t *RouteTable) Resolve(name string) (string, error) {
	t.mu.RLock()
	path, ok := t.routes[strings.TrimSpace(name)]
	t.mu.RUnlock()
	if !ok {
		return "", ErrRouteNotFound
	}
	return path, nil
}
