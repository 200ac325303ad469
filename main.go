package main

import (
	"log"

	"lms/config"
	adminController "lms/controllers/admin"
	courseController "lms/controllers/course"
	enrollmentController "lms/controllers/enrollment"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	"lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	clock, err := enrollment.NewClock(config.AppConfig.TimeZone)
	if err != nil {
		log.Fatalf("Failed to load institute timezone: %v", err)
	}

	svc := enrollment.NewService(database.Database.Db, clock, utils.NewSMTPMailer())
	enrollmentController.Svc = svc
	adminController.Svc = svc
	adminController.Clock = clock
	courseController.Svc = svc

	utils.InitializeEnrollmentScheduler(clock)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Locally stored uploads (certificates, payment proofs)
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
