package middleware

import (
	"crypto/subtle"
	"net/http"

	"hiringlens/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	siteAccessCookie  = "site_access"
	siteAccessGranted = "granted"
)

// SiteGate optionally walls off the whole site behind a shared
// password. An empty password disables the gate; the unlock endpoint
// itself is always reachable.
func SiteGate(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.Next()
			return
		}

		if c.FullPath() == "/api/site-access" || c.FullPath() == "/healthz" {
			c.Next()
			return
		}

		if cookie, err := c.Cookie(siteAccessCookie); err == nil && cookie == siteAccessGranted {
			c.Next()
			return
		}

		response.Error(c, http.StatusUnauthorized, "SITE_LOCKED", "Site access password required", nil)
		c.Abort()
	}
}

type siteAccessRequest struct {
	Password string `json:"password" binding:"required"`
}

// SiteAccessHandler checks the submitted password and sets the access
// cookie on a match. The comparison is constant-time.
func SiteAccessHandler(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			response.Success(c, http.StatusOK, gin.H{"granted": true}, nil)
			return
		}

		var req siteAccessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is required", nil)
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(password)) != 1 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect password", nil)
			return
		}

		c.SetCookie(siteAccessCookie, siteAccessGranted, 60*60*24*30, "/", "", false, true)
		response.Success(c, http.StatusOK, gin.H{"granted": true}, nil)
	}
}
