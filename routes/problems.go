package routes

import (
	"vibecode/controllers"

	"github.com/gin-gonic/gin"
)

// SetupProblemRoutes registers catalog browsing, community reactions and
// solution evaluation
func SetupProblemRoutes(router *gin.RouterGroup) {
	router.GET("/problems", controllers.GetProblems)
	router.GET("/problems/:id", controllers.GetProblem)
	router.POST("/problems/:id/like", controllers.ToggleLike)
	router.POST("/problems/:id/dislike", controllers.ToggleDislike)
	router.POST("/problems/:id/star", controllers.ToggleStar)

	router.POST("/evaluate-solution", controllers.EvaluateSolution)
}
