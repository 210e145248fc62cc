package routes

import (
	"vibecode/controllers"

	"github.com/gin-gonic/gin"
)

// GetProvidersRouteHandler serves the public provider catalog
func GetProvidersRouteHandler(ctx *gin.Context) {
	controllers.GetProviders(ctx)
}

// SetupAIRoutes registers the authenticated AI surface. The settings resource
// is served by one handler that switches on method, so unsupported methods get
// a 405 from its default branch.
func SetupAIRoutes(router *gin.RouterGroup) {
	router.POST("/ai/chat", controllers.Chat)

	settings := "/user/ai-settings"
	router.GET(settings, controllers.AISettingsHandler)
	router.PUT(settings, controllers.AISettingsHandler)
	router.POST(settings, controllers.AISettingsHandler)
	router.DELETE(settings, controllers.AISettingsHandler)
	router.PATCH(settings, controllers.AISettingsHandler)
}
