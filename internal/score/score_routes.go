package score

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/companies/:slug/score", handler.GetForCompany)
	r.GET("/leaderboard", handler.Leaderboard)
}
