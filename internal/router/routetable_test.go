package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTableExactMatch(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodGet, "/api/health")
	tbl.Add(http.MethodPost, "/api/auth/signup")

	matched, allowed := tbl.Permits("/api/health", http.MethodGet)
	assert.True(t, matched)
	assert.True(t, allowed)

	matched, allowed = tbl.Permits("/api/health", http.MethodPost)
	assert.True(t, matched)
	assert.False(t, allowed, "known path, wrong method")

	matched, _ = tbl.Permits("/api/unknown", http.MethodGet)
	assert.False(t, matched, "unknown path must not match")
}

func TestRouteTableMethodOrderIsRegistrationOrder(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodPost, "/api/thing")
	tbl.Add(http.MethodGet, "/api/thing")
	tbl.Add(http.MethodDelete, "/api/thing")
	tbl.Add(http.MethodGet, "/api/thing") // duplicate, must not reorder or repeat

	methods, ok := tbl.Allowed("/api/thing")
	assert.True(t, ok)
	assert.Equal(t, []string{http.MethodPost, http.MethodGet, http.MethodDelete}, methods)
}

func TestRouteTableParamSegment(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodGet, "/api/auth/display-picture/:userId")

	matched, allowed := tbl.Permits("/api/auth/display-picture/665f1c2e9d3a4b0012345678", http.MethodGet)
	assert.True(t, matched)
	assert.True(t, allowed)

	// A param matches exactly one segment.
	matched, _ = tbl.Permits("/api/auth/display-picture", http.MethodGet)
	assert.False(t, matched)
	matched, _ = tbl.Permits("/api/auth/display-picture/a/b", http.MethodGet)
	assert.False(t, matched)
}

func TestRouteTableWildcard(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodGet, "/static/*")

	matched, allowed := tbl.Permits("/static/css/site.css", http.MethodGet)
	assert.True(t, matched)
	assert.True(t, allowed)
}

func TestRouteTableFirstMatchWins(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodGet, "/api/items/:id")
	tbl.Add(http.MethodPost, "/api/items/special")

	// "/api/items/special" also matches the earlier param pattern, which
	// therefore decides the method set.
	methods, ok := tbl.Allowed("/api/items/special")
	assert.True(t, ok)
	assert.Equal(t, []string{http.MethodGet}, methods)
}

func TestRouteTableRootPath(t *testing.T) {
	tbl := NewRouteTable()
	tbl.Add(http.MethodGet, "/")

	matched, allowed := tbl.Permits("/", http.MethodGet)
	assert.True(t, matched)
	assert.True(t, allowed)

	matched, allowed = tbl.Permits("/", http.MethodPost)
	assert.True(t, matched)
	assert.False(t, allowed)
}
