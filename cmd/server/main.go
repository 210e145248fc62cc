package main

import (
	"log"
	"strconv"
	"time"

	"vibecode/config"
	"vibecode/controllers"
	"vibecode/db"
	"vibecode/middlewares"
	"vibecode/routes"
	"vibecode/services"
	"vibecode/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	controllers.SetTokenExpiry(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)
	services.SetEvaluationBudget(time.Duration(cfg.Evaluation.TimeoutSeconds) * time.Second)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	services.InitSettingsService(services.NewMongoSettingsRepository())

	// Mirror the catalog into the database and add sample accounts
	utils.SeedProblemData()
	utils.PopulateTestUsers()

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CorsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.GET("/ai/providers", routes.GetProvidersRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/profile", routes.GetProfileRouteHandler)
		routes.SetupAIRoutes(auth)
		routes.SetupProblemRoutes(auth)
	}

	return router
}
