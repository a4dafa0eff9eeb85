package main

import (
	"log"
	"net/http"
	"os"

	"github.com/chabbasaad/4CITE-sub001/config"
	"github.com/chabbasaad/4CITE-sub001/jobs"
	"github.com/chabbasaad/4CITE-sub001/routes"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	// Cron cần service riêng, không đi qua HTTP layer
	appLogger := logger.NewFromEnv()
	jobs.SetPostPurger(services.NewPostService(services.PostServiceOptions{
		DB: config.DB, Logger: appLogger,
	}))
	jobs.SetCommentPurger(services.NewCommentService(services.CommentServiceOptions{
		DB: config.DB, Logger: appLogger,
	}))
	jobs.SetBookingCompleter(services.NewBookingService(services.BookingServiceOptions{
		DB: config.DB, Logger: appLogger,
	}))

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
