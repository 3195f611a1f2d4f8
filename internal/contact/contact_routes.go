package contact

import (
	"hiringlens/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/contact", middleware.RateLimitByIP(0.05, 3), handler.Submit)
}
