package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the API routes. Every transition of the two view
// state machines is reachable here; the shell toggle and the snapshots
// round out the surface.
func SetupRoutes(router *gin.Engine, handler *Handler, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	router.GET("/api/health", handler.HandleHealth)

	api := router.Group("/api")
	api.Use(SessionMiddleware(handler.Sessions))
	{
		api.GET("/session", handler.HandleGetSession)
		api.PUT("/session/mode", handler.HandleSetMode)

		generator := api.Group("/generator")
		{
			generator.GET("", handler.HandleGetGenerator)
			generator.PUT("/topic", handler.HandleSetTopic)
			generator.PUT("/difficulty", handler.HandleSetDifficulty)
			generator.POST("/types/toggle", handler.HandleToggleType)
			generator.POST("/generate", handler.HandleGenerate)
			generator.POST("/clear", handler.HandleClearQuestions)
			generator.POST("/questions/:questionId/reveal", handler.HandleToggleReveal)
		}

		grader := api.Group("/grader")
		{
			grader.GET("", handler.HandleGetGrader)
			grader.POST("/image", handler.HandleUploadImage)
			grader.POST("/grade", handler.HandleGrade)
			grader.DELETE("/image", handler.HandleRemoveImage)
		}
	}
}
