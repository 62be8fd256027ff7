// Package routecache keeps rendered GET responses per client until a
// mutation invalidates their route.
package routecache

import (
	"context"
	"net/http"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderCache = "X-Cache"
	genKey      = "routecache.gen"

	// DefaultSize bounds the store when New is given a non-positive size.
	DefaultSize = 1024
)

type entry struct {
	path        string
	contentType string
	body        []byte
}

// Store holds at most size entries; the least recently used one is evicted
// first.
type Store struct {
	mu      sync.RWMutex
	gen     uint64
	entries *lru.Cache[string, entry]
}

func New(size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	// lru.New only fails on a non-positive size
	c, _ := lru.New[string, entry](size)
	return &Store{entries: c}
}

// Invalidate drops route and every route below it, for all clients.
func (s *Store) Invalidate(_ context.Context, route string) {
	route = strings.TrimSuffix(route, "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	for _, k := range s.entries.Keys() {
		e, ok := s.entries.Peek(k)
		if ok && (e.path == route || strings.HasPrefix(e.path, route+"/")) {
			s.entries.Remove(k)
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Len()
}

func (s *Store) get(key string) (entry, bool, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries.Get(key)
	return e, ok, s.gen
}

// put stores e unless an invalidation happened since gen was read.
func (s *Store) put(key string, gen uint64, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.entries.Add(key, e)
}

// Middleware serves and fills the cache for GET requests. clientKey scopes
// entries to one client, e.g. by session subject.
func (s *Store) Middleware(clientKey func(echo.Context) string) echo.MiddlewareFunc {
	key := func(c echo.Context) string {
		return clientKey(c) + " " + c.Request().URL.RequestURI()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		fill := middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
			Skipper: func(c echo.Context) bool { return c.Request().Method != http.MethodGet },
			Handler: func(c echo.Context, _, res []byte) {
				resp := c.Response()
				if !resp.Committed || resp.Status != http.StatusOK {
					return
				}
				gen, _ := c.Get(genKey).(uint64)
				s.put(key(c), gen, entry{
					path:        c.Request().URL.Path,
					contentType: resp.Header().Get(echo.HeaderContentType),
					body:        append([]byte(nil), res...),
				})
			},
		})(next)

		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			e, ok, gen := s.get(key(c))
			if ok {
				c.Response().Header().Set(HeaderCache, "HIT")
				return c.Blob(http.StatusOK, e.contentType, e.body)
			}
			c.Set(genKey, gen)
			c.Response().Header().Set(HeaderCache, "MISS")
			return fill(c)
		}
	}
}
