package company

import (
	"hiringlens/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.GET("/:slug", handler.GetBySlug)
		companies.PUT("/:slug", middleware.AuthMiddleware(), middleware.RequireAdmin(), handler.Update)
	}

	r.GET("/search", handler.Search)
	r.GET("/compare", handler.Compare)
}
