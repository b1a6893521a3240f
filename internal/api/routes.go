package api

import (
	"github.com/gin-gonic/gin"

	"github.com/garyiyer/testqandas/internal/api/handlers"
)

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	router.Use(CORSMiddleware())

	// --- Public Auth Routes ---
	router.GET("/login", handler.HandleGoogleLogin)
	router.GET("/auth/google/callback", handler.HandleGoogleCallback)

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.GET("/auth/status", handler.HandleAuthStatus)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.GET("/user/profile", handler.HandleUserProfile)
			authorized.POST("/logout", handler.HandleLogout)

			authorized.POST("/files/upload", handler.HandleUploadFile)   // Upload a document to blob storage
			authorized.POST("/files/process", handler.HandleProcessFile) // Chunk and tokenize an uploaded document
			authorized.GET("/chunks", handler.HandleListChunks)          // List processed chunks across documents
			authorized.POST("/generate", handler.HandleGenerate)         // Generate questions from selected chunks
		}
	}
}
