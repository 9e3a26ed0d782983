package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pledgecity/backend/controllers"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/docs"
	"github.com/pledgecity/backend/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           PledgeCity API
// @version         1.0
// @description     API Server for the PledgeCity crowdfunding application
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "PledgeCity API"
	docs.SwaggerInfo.Description = "API Server for the PledgeCity crowdfunding application"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	router := setupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", middleware.JWTAuth(), controllers.Logout)
		auth.GET("/me", middleware.JWTAuth(), controllers.Me)
	}

	// Listing routes work anonymously; the audience resolver hides anything
	// the caller may not see.
	public := router.Group("/api")
	public.Use(middleware.OptionalJWTAuth())
	{
		public.GET("/threads", controllers.GetThreads)
		public.GET("/reverse", controllers.GetReverseRequests)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Mission routes
		api.POST("/threads", controllers.CreateThread)
		api.DELETE("/threads/:id", controllers.DeleteThread)
		api.POST("/threads/:id/pledges", controllers.CreateThreadPledge)
		api.POST("/threads/:id/commit-current", controllers.CommitCurrent)
		api.POST("/threads/:id/comments", controllers.CreateThreadComment)

		// Reverse auction routes
		api.POST("/reverse", controllers.CreateReverseRequest)
		api.POST("/reverse/:id/bids", controllers.CreateBid)
		api.POST("/reverse/:id/pledges", controllers.CreateReversePledge)
		api.POST("/reverse/:id/comments", controllers.CreateReverseComment)
		api.POST("/reverse/:id/close", controllers.CloseReverseRequest)

		// Challenge routes
		api.GET("/challenges", controllers.GetChallenges)
		api.POST("/challenges", controllers.CreateChallenge)
		api.POST("/challenges/:id/respond", controllers.RespondToChallenge)
		api.POST("/challenges/:id/accept-counter", controllers.AcceptCounter)

		// Group routes
		api.GET("/groups", controllers.GetGroups)
		api.POST("/groups", controllers.CreateGroup)
		api.POST("/groups/:id/invite", controllers.InviteToGroup)
		api.POST("/groups/:id/approve", controllers.ApproveInvite)

		// Balance routes
		api.GET("/balance", controllers.GetBalance)
		api.POST("/balance/:id/declare-received", controllers.DeclareReceived)
	}

	return router
}
