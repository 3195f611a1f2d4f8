package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hiringlens/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func gatedRouter(password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SiteGate(password))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/companies", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/site-access", middleware.SiteAccessHandler(password))
	return r
}

func TestSiteGate(t *testing.T) {
	t.Run("locked without cookie", func(t *testing.T) {
		r := gatedRouter("letmein")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "SITE_LOCKED")
	})

	t.Run("healthz stays reachable", func(t *testing.T) {
		r := gatedRouter("letmein")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unlock flow sets the cookie", func(t *testing.T) {
		r := gatedRouter("letmein")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/site-access", strings.NewReader(`{"password":"letmein"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var gateCookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "site_access" {
				gateCookie = c
			}
		}
		assert.NotNil(t, gateCookie)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
		req.AddCookie(gateCookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		r := gatedRouter("letmein")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/site-access", strings.NewReader(`{"password":"guess"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty password disables the gate", func(t *testing.T) {
		r := gatedRouter("")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
