package interview

import (
	"hiringlens/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/recent", handler.ListRecent)
		reviews.GET("/mine", middleware.AuthMiddleware(), handler.ListMine)

		reviews.POST("",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		reviews.PUT("/:id", middleware.AuthMiddleware(), handler.Edit)
		reviews.DELETE("/:id", middleware.AuthMiddleware(), handler.Delete)

		// Flagging is open to signed-out readers.
		reviews.POST("/:id/flag", middleware.OptionalAuth(), middleware.RateLimitByIP(0.2, 3), handler.Flag)
	}

	r.GET("/companies/:slug/reviews", handler.ListForCompany)

	admin := r.Group("/admin/reviews", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/pending", handler.ListPendingQueue)
		admin.GET("/flagged", handler.ListFlaggedQueue)
		admin.POST("/:id/approve", handler.Approve)
		admin.POST("/:id/reject", handler.Reject)
	}
}
