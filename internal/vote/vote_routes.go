package vote

import (
	"hiringlens/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/reviews/:id/vote", middleware.AuthMiddleware(), handler.Toggle)
	r.GET("/reviews/:id/votes", middleware.OptionalAuth(), handler.Get)
}
