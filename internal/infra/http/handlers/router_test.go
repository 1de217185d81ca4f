package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/infra/http/middleware"
)

func testRouter(lister *MockLeadLister) http.Handler {
	return NewRouter(RouterConfig{
		Leads:       NewLeadHandler(new(MockLeadCreator), nil),
		Admin:       NewAdminHandler(lister, new(MockLeadUpdater), nil),
		Auth:        NewAuthHandler(new(MockAuthenticator), 0, false, nil),
		Health:      NewHealthHandler("test", map[string]Pinger{"database": nil}),
		Sessions:    staticSessions{token: "good"},
		CORSOrigins: []string{"http://localhost:3000"},
	})
}

func TestAdminRoutesRequireSession(t *testing.T) {
	lister := new(MockLeadLister)
	router := testRouter(lister)

	for _, path := range []string{"/api/admin/leads", "/api/admin/leads/export", "/api/admin/leads/hidden"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
	lister.AssertNotCalled(t, "Execute", mock.Anything)
	lister.AssertNotCalled(t, "Hidden", mock.Anything)
}

func TestHiddenLeadsRoute(t *testing.T) {
	lister := new(MockLeadLister)
	lister.On("Hidden", mock.Anything).Return([]entity.Lead{{ID: "h1", Status: strp(entity.StatusNotInterested)}}, nil)
	router := testRouter(lister)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads/hidden", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "good"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"h1"`)
	lister.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestAdminRoutesWithSession(t *testing.T) {
	lister := new(MockLeadLister)
	lister.On("Execute", mock.Anything).Return([]entity.Lead{}, nil)
	router := testRouter(lister)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "good"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(new(MockLeadLister)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "not configured")
}
