package router

import (
	"strings"
)

// routeEntry is one flattened route: a registered path pattern and the
// methods declared for it, in registration order.
type routeEntry struct {
	pattern  string
	segments []string
	methods  []string
}

func (e *routeEntry) allows(method string) bool {
	for _, m := range e.methods {
		if m == method {
			return true
		}
	}
	return false
}

// RouteTable maps registered path patterns to their allowed methods. It is
// filled from the same declarations that register handlers, once at
// startup — the route set never changes after that — and consulted when
// deciding between 404 and 405. Matching is first-match-wins in
// registration order; a ":param" segment matches any single path segment
// and a "*" segment matches the rest of the path.
type RouteTable struct {
	entries []*routeEntry
	index   map[string]*routeEntry
}

func NewRouteTable() *RouteTable {
	return &RouteTable{index: map[string]*routeEntry{}}
}

// Add records a method for a path pattern. Patterns keep the order of
// their first registration; methods keep the order they were added in.
func (t *RouteTable) Add(method, pattern string) {
	e, ok := t.index[pattern]
	if !ok {
		e = &routeEntry{pattern: pattern, segments: splitPath(pattern)}
		t.index[pattern] = e
		t.entries = append(t.entries, e)
	}
	if !e.allows(method) {
		e.methods = append(e.methods, method)
	}
}

// Allowed returns the methods registered for the first pattern matching
// path, or ok=false when no pattern matches at all.
func (t *RouteTable) Allowed(path string) (methods []string, ok bool) {
	if e := t.match(path); e != nil {
		return e.methods, true
	}
	return nil, false
}

// Permits reports whether path matches a registered pattern and, if so,
// whether method is among that pattern's allowed methods. matched=false
// means the path is unknown entirely: a 404, never a 405.
func (t *RouteTable) Permits(path, method string) (matched, allowed bool) {
	e := t.match(path)
	if e == nil {
		return false, false
	}
	return true, e.allows(method)
}

func (t *RouteTable) match(path string) *routeEntry {
	segs := splitPath(path)
	for _, e := range t.entries {
		if matchSegments(e.segments, segs) {
			return e
		}
	}
	return nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchSegments compares a pattern to a concrete path segment by segment.
func matchSegments(pattern, path []string) bool {
	for i, ps := range pattern {
		if strings.HasPrefix(ps, "*") {
			// a wildcard swallows the remainder
			return true
		}
		if i >= len(path) {
			return false
		}
		if strings.HasPrefix(ps, ":") {
			continue // parameter matches any single segment
		}
		if ps != path[i] {
			return false
		}
	}
	return len(pattern) == len(path)
}
