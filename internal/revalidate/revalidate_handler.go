package revalidate

import (
	"crypto/subtle"
	"net/http"
	"regexp"

	"hiringlens/internal/shared/pagecache"
	"hiringlens/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// Slug is optional: a secret-only request purges the home page, a
// slugged one purges the matching company page as well.
type RevalidateRequest struct {
	Secret string `json:"secret" binding:"required"`
	Slug   string `json:"slug"`
}

// Handler lets the page renderer purge cached pages after content
// changes, gated by a shared secret.
type Handler struct {
	secret string
	pages  pagecache.Invalidator
	logger *zap.Logger
}

func NewHandler(secret string, pages pagecache.Invalidator, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("revalidate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("revalidate.handler")
	}
	return &Handler{secret: secret, pages: pages, logger: l}
}

func (h *Handler) Revalidate(c *gin.Context) {
	var req RevalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "secret is required", nil)
		return
	}

	if h.secret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		h.logger.Warn("revalidate rejected", zap.String("ip", c.ClientIP()))
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid revalidation secret", nil)
		return
	}

	keys := []string{pagecache.KeyHome}
	if req.Slug != "" {
		if !slugRe.MatchString(req.Slug) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid slug", nil)
			return
		}
		keys = []string{pagecache.CompanyKey(req.Slug), pagecache.KeyHome}
	}

	if err := h.pages.Invalidate(c.Request.Context(), keys...); err != nil {
		h.logger.Error("revalidate purge failed", zap.String("slug", req.Slug), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revalidate", nil)
		return
	}

	h.logger.Info("pages revalidated", zap.String("slug", req.Slug))
	response.Success(c, http.StatusOK, gin.H{"revalidated": true}, nil)
}
