package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-whatsapp-kapso/core"
)

type Registry struct {
	logger core.Logger

	mu     sync.RWMutex
	routes map[string]*route
}

type route struct {
	handler http.Handler
}

type Option func(*Registry)

func WithLogger(logger core.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{routes: map[string]*route{}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.logger = core.ResolveLogger("kapso.inbound", nil, r.logger)
	return r
}

// NormalizePath maps an empty path to the default inbound path and ensures a
// leading slash.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return core.DefaultWebhookPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// TryRegister installs handler at path. A path that is already taken is left
// untouched and a conflict error is returned.
func (r *Registry) TryRegister(path string, handler http.Handler) (func(), error) {
	if r == nil {
		return noop, inboundInternal("inbound: registry is nil", nil)
	}
	if handler == nil {
		return noop, inboundBadInput("inbound: handler is nil", map[string]any{"path": path})
	}
	normalized := NormalizePath(path)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routes == nil {
		r.routes = map[string]*route{}
	}
	if _, exists := r.routes[normalized]; exists {
		return noop, inboundConflict("inbound: path already registered", map[string]any{"path": normalized})
	}
	entry := &route{handler: handler}
	r.routes[normalized] = entry

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if current, ok := r.routes[normalized]; ok && current == entry {
			delete(r.routes, normalized)
		}
	}, nil
}

// Register is TryRegister with the error logged. The first registration for
// a path wins.
func (r *Registry) Register(path string, handler http.Handler) func() {
	unregister, err := r.TryRegister(path, handler)
	if err != nil && r != nil {
		core.Log(context.Background(), r.logger, "warn", "webhook route already registered or invalid", map[string]any{
			"path":  NormalizePath(path),
			"error": err.Error(),
		})
	}
	return unregister
}

func (r *Registry) Lookup(path string) (http.Handler, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.routes[path]
	if !ok {
		return nil, false
	}
	return entry.handler, true
}

// Handle dispatches req to the handler registered for its URL path. It
// reports false when no route matches and nothing was written.
func (r *Registry) Handle(w http.ResponseWriter, req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	handler, ok := r.Lookup(req.URL.Path)
	if !ok {
		return false
	}
	handler.ServeHTTP(w, req)
	return true
}

func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.Handle(w, req) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(core.SendResult{Success: false, Error: "Not Found"})
}

func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	paths := make([]string, 0, len(r.routes))
	for path := range r.routes {
		paths = append(paths, path)
	}
	r.mu.RUnlock()
	sort.Strings(paths)
	return paths
}

func noop() {}
