package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Chun-Lin-Huang/class/internal/config"
	"github.com/Chun-Lin-Huang/class/internal/database"
	"github.com/Chun-Lin-Huang/class/internal/engine"
	"github.com/Chun-Lin-Huang/class/internal/handlers"
	"github.com/Chun-Lin-Huang/class/internal/middleware"
	"github.com/Chun-Lin-Huang/class/internal/routes"
	"github.com/Chun-Lin-Huang/class/internal/store"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if err := database.ConnectDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := database.EnsureIndexes(database.DB, cfg.StrictCheckIn); err != nil {
		log.Fatal("Failed to ensure indexes:", err)
	}

	if err := utils.InitJWT(cfg.JWTSecret, cfg.JWKSURL); err != nil {
		log.Fatal("Failed to initialize JWT verification:", err)
	}

	handlers.RegisterValidations()

	courses := store.NewCourseStore(database.DB)
	students := store.NewStudentStore(database.DB)
	roster := store.NewCourseStudentStore(database.DB)
	sessions := store.NewSessionStore(database.DB)
	records := store.NewRecordStore(database.DB)
	users := store.NewUserStore(database.DB)

	eng := engine.New(courses, students, roster, sessions, records)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "Server is running", nil)
	})

	api := r.Group("/api/v1")
	routes.AuthRoutes(api, handlers.NewAuthHandler(users, students))
	routes.CourseRoutes(api, handlers.NewCourseHandler(courses))
	routes.CourseStudentRoutes(api, handlers.NewCourseStudentHandler(courses, students, roster))
	routes.AttendanceRoutes(api, handlers.NewAttendanceHandler(eng))

	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
